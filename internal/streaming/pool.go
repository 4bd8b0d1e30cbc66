// Package streaming runs the background worker pool that generates and
// meshes chunks off the main loop, and the per-frame controller that
// decides which chunks to load, mesh, and evict as a viewer moves. The
// pool's three-channel select loop is ported close to 1:1 from the Rust
// reference's persistence.WorkerPool (gen_request_rx / mesh_request_rx /
// shutdown_rx), replacing crossbeam_channel::select! with a Go select
// over three channels per worker goroutine.
package streaming

import (
	"log"
	"runtime"
	"sync"

	"mini-mc/internal/cache"
	"mini-mc/internal/meshing"
	"mini-mc/internal/world"

	"github.com/google/uuid"
)

// GenMode selects between the pipeline's two generation request kinds
// (spec §4.5): LoadOrGenerate falls back to procedural generation on a
// cache miss, LoadFromCache never does (used for the outer render-disk
// annulus, where a miss just means "not worth generating yet").
type GenMode int

const (
	ModeLoadOrGenerate GenMode = iota
	ModeLoadFromCache
)

// GenRequest asks a worker to produce block data for coord, generating it
// if the cache has nothing yet and Mode is ModeLoadOrGenerate.
type GenRequest struct {
	Coord world.ChunkCoord
	Mode  GenMode
}

// GenResult is a completed GenRequest. Blocks is nil for a
// ModeLoadFromCache request that missed the cache (spec §4.5's
// LoadFromCache "reply (coord, None)").
type GenResult struct {
	Coord  world.ChunkCoord
	Blocks *world.Blocks
}

// MeshRequest asks a worker to build a mesh for an already-loaded chunk.
type MeshRequest struct {
	EntityID  uuid.UUID
	Coord     world.ChunkCoord
	Blocks    *world.Blocks
	Neighbors meshing.NeighborBlocks
	LOD       world.LOD
}

// MeshResult is a completed MeshRequest. Opaque/Transparent are nil-able
// (Mesh.Empty()) when the chunk has no visible faces at all.
type MeshResult struct {
	EntityID    uuid.UUID
	Coord       world.ChunkCoord
	Opaque      *meshing.Mesh
	Transparent *meshing.Mesh
}

// WorkerPool runs NumWorkers goroutines, each selecting over a gen-request
// channel, a mesh-request channel, and a shutdown channel, mirroring the
// reference implementation's worker loop exactly.
type WorkerPool struct {
	genReq  chan GenRequest
	meshReq chan MeshRequest
	genRes  chan GenResult
	meshRes chan MeshResult
	done    chan struct{}
	wg      sync.WaitGroup

	generator *world.WorldGenerator
	cache     *cache.ChunkCache
}

// NewWorkerPool starts a pool of max(1, runtime.NumCPU()-1) workers, the
// same "leave one core for the main loop" sizing the reference pool uses
// via num_cpus::get().saturating_sub(1).max(1).
func NewWorkerPool(generator *world.WorldGenerator, chunkCache *cache.ChunkCache, queueDepth int) *WorkerPool {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}

	p := &WorkerPool{
		genReq:    make(chan GenRequest, queueDepth),
		meshReq:   make(chan MeshRequest, queueDepth),
		genRes:    make(chan GenResult, queueDepth),
		meshRes:   make(chan MeshResult, queueDepth),
		done:      make(chan struct{}),
		generator: generator,
		cache:     chunkCache,
	}

	log.Printf("streaming: spawning %d worker goroutines", n)
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.workerLoop(i)
	}
	return p
}

// SubmitGen, SubmitMesh submit work. Both are non-blocking sends that drop
// the request with a log line if the queue is saturated, so a frame's
// dispatch phase never stalls the main loop waiting on a full channel. The
// bool return reports whether the request was actually enqueued; per spec
// §7 a caller that gets false back must leave whatever tag or pending-state
// it was about to commit untouched, so the action is retried next frame
// instead of silently vanishing.
func (p *WorkerPool) SubmitGen(req GenRequest) bool {
	select {
	case p.genReq <- req:
		return true
	default:
		log.Printf("streaming: gen queue full, dropping request for %v", req.Coord)
		return false
	}
}

func (p *WorkerPool) SubmitMesh(req MeshRequest) bool {
	select {
	case p.meshReq <- req:
		return true
	default:
		log.Printf("streaming: mesh queue full, dropping request for %v", req.Coord)
		return false
	}
}

// GenResults, MeshResults are drained by the controller once per frame.
func (p *WorkerPool) GenResults() <-chan GenResult   { return p.genRes }
func (p *WorkerPool) MeshResults() <-chan MeshResult { return p.meshRes }

func (p *WorkerPool) workerLoop(id int) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("streaming: worker %d recovered panic: %v", id, r)
		}
	}()
	for {
		select {
		case req, ok := <-p.genReq:
			if !ok {
				return
			}
			p.handleGen(req)
		case req, ok := <-p.meshReq:
			if !ok {
				return
			}
			p.handleMesh(req)
		case <-p.done:
			return
		}
	}
}

func (p *WorkerPool) handleGen(req GenRequest) {
	blocks, err := p.cache.Load(req.Coord)
	if err != nil {
		log.Printf("streaming: worker: error loading chunk %v from cache: %v", req.Coord, err)
		blocks = nil // decode failure is a miss, not a fatal error (spec §7)
	}
	if blocks == nil && req.Mode == ModeLoadOrGenerate {
		blocks = p.generator.Generate(req.Coord)
		if err := p.cache.Save(req.Coord, blocks); err != nil {
			log.Printf("streaming: worker: error saving generated chunk %v: %v", req.Coord, err)
		}
	}
	select {
	case p.genRes <- GenResult{Coord: req.Coord, Blocks: blocks}:
	case <-p.done:
	}
}

func (p *WorkerPool) handleMesh(req MeshRequest) {
	opaque, transparent := meshing.Build(req.Blocks, req.Neighbors, req.LOD)
	select {
	case p.meshRes <- MeshResult{EntityID: req.EntityID, Coord: req.Coord, Opaque: opaque, Transparent: transparent}:
	case <-p.done:
	}
}

// Shutdown signals every worker to stop and waits for them to drain. A
// panicking worker is recovered and logged inside its own goroutine
// (workerLoop), the way the reference pool's shutdown catches a panicked
// worker thread instead of propagating it to the caller.
func (p *WorkerPool) Shutdown() {
	log.Printf("streaming: sending shutdown signal")
	close(p.done)

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("streaming: worker pool shutdown recovered panic: %v", r)
			}
		}()
		p.wg.Wait()
	}()
	log.Printf("streaming: worker pool shut down completely")
}
