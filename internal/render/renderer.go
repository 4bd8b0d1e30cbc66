// Package render defines the external collaborator the Streaming
// Controller hands finished meshes to. Nothing in this repo issues a
// GL/Vulkan call — that whole concern was the teacher's go-gl/vulkan-go
// stack, dropped per SPEC_FULL.md §1 since an actual GPU context is out of
// scope here. LoggingRenderer stands in for a real graphics backend in
// tests and the demo entrypoint.
package render

import (
	"log"

	"mini-mc/internal/meshing"
	"mini-mc/internal/world"
)

// Renderer is the interface the Streaming Controller uploads finished
// chunk meshes to and asks to release them on eviction. A real backend
// implementation would upload Opaque/Transparent into GPU buffers here and
// return whatever handle its draw loop needs to find them again.
type Renderer interface {
	// Upload registers a chunk's opaque and transparent meshes and returns
	// an opaque handle the controller will pass back to Cleanup.
	Upload(coord world.ChunkCoord, opaque, transparent *meshing.Mesh) any

	// Cleanup releases whatever Upload allocated for handle.
	Cleanup(handle any)
}

// LoggingRenderer is a Renderer that does no GPU work at all: it logs what
// it would have uploaded/released, keyed by a monotonic handle counter, so
// demos and tests can exercise the full streaming pipeline headlessly.
type LoggingRenderer struct {
	next int
}

type loggingHandle int

// Upload logs the chunk's vertex/index counts and returns a fresh handle.
func (r *LoggingRenderer) Upload(coord world.ChunkCoord, opaque, transparent *meshing.Mesh) any {
	r.next++
	h := loggingHandle(r.next)
	log.Printf("render: upload chunk %v handle=%d opaque_verts=%d transparent_verts=%d",
		coord, h, vertexCount(opaque), vertexCount(transparent))
	return h
}

// Cleanup logs the handle being released.
func (r *LoggingRenderer) Cleanup(handle any) {
	log.Printf("render: cleanup handle=%v", handle)
}

func vertexCount(m *meshing.Mesh) int {
	if m == nil {
		return 0
	}
	return len(m.Vertices) / meshing.VertexStride
}
