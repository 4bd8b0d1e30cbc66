// Package meshing turns chunk block data into renderable triangle lists.
// The algorithm is the teacher's own greedy face-merging (per-axis 2D mask,
// expand-by-width-then-height), generalized from its packed-uint32 vertex
// encoding to plain interleaved float32 vertices, split into an opaque and
// a transparent buffer, and with an LOD downsample pre-pass borrowed from
// the spec's Low-detail requirement.
package meshing

// VertexStride is the number of float32 values per vertex: position
// (x,y,z), texture coordinate (u,v), and packed texture-array layer.
const VertexStride = 6

// Mesh is a single draw call's worth of geometry: an interleaved vertex
// buffer (VertexStride floats per vertex) and a triangle index list.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// Empty reports whether the mesh has no geometry, the signal the
// Streaming Controller uses to decide whether to call Renderer.Upload at
// all for a chunk (spec §6: "a chunk with no visible faces uploads
// nothing").
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Vertices) == 0
}

func (m *Mesh) appendQuad(p [4][3]float32, uv [4][2]float32, layer int) {
	base := uint32(len(m.Vertices) / VertexStride)
	for i := 0; i < 4; i++ {
		m.Vertices = append(m.Vertices,
			p[i][0], p[i][1], p[i][2],
			uv[i][0], uv[i][1],
			float32(layer),
		)
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}
