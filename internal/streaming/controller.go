package streaming

import (
	"log"

	"mini-mc/internal/cache"
	"mini-mc/internal/meshing"
	"mini-mc/internal/render"
	"mini-mc/internal/world"
)

// Controller drives the per-frame chunk lifecycle: generate what's newly
// in range, mesh what's dirty, upload what's ready, and evict what's fallen
// out of range. It owns no goroutines itself; all blocking work happens in
// the WorkerPool, and Tick only ever does non-blocking channel drains plus
// bookkeeping, so the caller's frame budget is never at the mercy of a
// slow generation or mesh job — the same split the reference's
// scheduler/WorkerPool pair makes (scheduler decides what to request,
// WorkerPool does the work off-thread).
type Controller struct {
	store    *world.ChunkStore
	pool     *WorkerPool
	renderer render.Renderer
	cache    *cache.ChunkCache
	cfg      Config

	pendingGen  map[world.ChunkCoord]struct{}
	pendingMesh map[world.ChunkCoord]struct{}

	viewerCX, viewerCZ int
}

// NewController builds a controller over an empty store. chunkCache is
// used to flush TagModified chunks on eviction and on Shutdown (spec
// §4.6's "eviction writes modified chunks back before despawn").
func NewController(pool *WorkerPool, renderer render.Renderer, chunkCache *cache.ChunkCache, cfg Config) *Controller {
	return &Controller{
		store:       world.NewChunkStore(cfg.Dims),
		pool:        pool,
		renderer:    renderer,
		cache:       chunkCache,
		cfg:         cfg,
		pendingGen:  make(map[world.ChunkCoord]struct{}),
		pendingMesh: make(map[world.ChunkCoord]struct{}),
	}
}

// Store exposes the underlying chunk store, e.g. for the Block Edit
// Protocol (SetBlock) or diagnostics.
func (c *Controller) Store() *world.ChunkStore { return c.store }

// Tick runs one frame's worth of phases A-D:
//
//	A: drain completed generation results into the store
//	B: reconcile the load/render disks around the new viewer position
//	C: drain completed mesh results, uploading non-empty meshes
//	D: dispatch mesh work for chunks that are dirty or whose LOD is stale
func (c *Controller) Tick(viewerWorldX, viewerWorldZ int) {
	c.drainGenResults()
	c.reconcile(viewerWorldX, viewerWorldZ)
	c.drainMeshResults()
	c.dispatchMeshWork()
}

// drainGenResults implements phase A: a LoadFromCache miss (Blocks == nil)
// is simply dropped, and a result for a coord that has since fallen out of
// the render ring (or already has an entity, e.g. a duplicate late result)
// is discarded rather than spawned, per spec §4.6 phase A.
func (c *Controller) drainGenResults() {
	for {
		select {
		case res := <-c.pool.GenResults():
			delete(c.pendingGen, res.Coord)
			if res.Blocks == nil {
				continue
			}
			if c.store.Has(res.Coord) {
				continue
			}
			if !c.inRenderRing(res.Coord) {
				continue
			}
			chunk := &world.Chunk{Coord: res.Coord, Blocks: res.Blocks}
			e := c.store.Spawn(res.Coord, chunk)
			e.SetTag(world.TagDirty)
			c.store.MarkNeighborsDirty(res.Coord)
		default:
			return
		}
	}
}

// inRenderRing reports whether coord's column lies within RenderDistance
// of the viewer's last-seen column and its Y lies within bounds.
func (c *Controller) inRenderRing(coord world.ChunkCoord) bool {
	if coord.Y < c.cfg.MinChunkY || coord.Y > c.cfg.MaxChunkY {
		return false
	}
	dx := coord.X - c.viewerCX
	dz := coord.Z - c.viewerCZ
	return dx*dx+dz*dz <= c.cfg.RenderDistance*c.cfg.RenderDistance
}

func (c *Controller) drainMeshResults() {
	for {
		select {
		case res := <-c.pool.MeshResults():
			delete(c.pendingMesh, res.Coord)
			e := c.store.Get(res.Coord)
			if e == nil || e.ID != res.EntityID {
				continue // chunk was evicted/respawned while meshing was in flight
			}
			c.upload(e, res.Opaque, res.Transparent)
		default:
			return
		}
	}
}

func (c *Controller) upload(e *world.Entity, opaque, transparent *meshing.Mesh) {
	if opaque.Empty() && transparent.Empty() {
		if e.HasTag(world.TagRenderable) {
			c.renderer.Cleanup(e.RenderHandle)
			e.ClearTag(world.TagRenderable)
		}
		e.Chunk.SetClean()
		return
	}
	if e.HasTag(world.TagRenderable) {
		c.renderer.Cleanup(e.RenderHandle)
	}
	handle := c.renderer.Upload(e.Coord, opaque, transparent)
	e.RenderHandle = handle
	e.SetTag(world.TagRenderable)
	e.Chunk.SetClean()
}

// reconcile computes the two concentric disks around the viewer and
// spawns/evicts to bring the store in line, per spec §4.6 phase B: every
// column in RenderDisk is a load target (LoadOrGenerate inside LoadDisk,
// LoadFromCache in the annulus between it and RenderDisk), and every
// entity whose column has fallen outside RenderDisk is evicted (saved
// first if TagModified).
func (c *Controller) reconcile(viewerWorldX, viewerWorldZ int) {
	cx := floorDiv(viewerWorldX, c.cfg.Dims.Width)
	cz := floorDiv(viewerWorldZ, c.cfg.Dims.Depth)
	c.viewerCX, c.viewerCZ = cx, cz

	loadSq := c.cfg.LoadDistance * c.cfg.LoadDistance
	renderSq := c.cfg.RenderDistance * c.cfg.RenderDistance

	for dx := -c.cfg.RenderDistance; dx <= c.cfg.RenderDistance; dx++ {
		for dz := -c.cfg.RenderDistance; dz <= c.cfg.RenderDistance; dz++ {
			distSq := dx*dx + dz*dz
			if distSq > renderSq {
				continue
			}
			mode := ModeLoadFromCache
			if distSq <= loadSq {
				mode = ModeLoadOrGenerate
			}
			for cy := c.cfg.MinChunkY; cy <= c.cfg.MaxChunkY; cy++ {
				coord := world.ChunkCoord{X: cx + dx, Y: cy, Z: cz + dz}
				if c.store.Has(coord) {
					continue
				}
				if _, inFlight := c.pendingGen[coord]; inFlight {
					continue
				}
				if c.pool.SubmitGen(GenRequest{Coord: coord, Mode: mode}) {
					c.pendingGen[coord] = struct{}{}
				}
				// A dropped send leaves coord out of pendingGen, so
				// reconcile retries it next frame (spec §7).
			}
		}
	}

	removed := c.store.EvictOutsideXZ(cx, cz, c.cfg.RenderDistance)
	for _, e := range removed {
		if e.HasTag(world.TagModified) {
			if err := c.cache.Save(e.Coord, e.Chunk.Blocks); err != nil {
				log.Printf("streaming: controller: error saving modified chunk %v on eviction: %v", e.Coord, err)
			}
		}
		if e.HasTag(world.TagRenderable) {
			c.renderer.Cleanup(e.RenderHandle)
		}
		delete(c.pendingGen, e.Coord)
		delete(c.pendingMesh, e.Coord)
	}
}

// dispatchMeshWork submits mesh requests for every remesh candidate within
// RenderDistance that isn't already being meshed, per spec §4.6 phase D.
// A candidate is: TagDirty, or its LOD tag disagrees with its currently
// required LOD, or a present neighbor's currently required LOD disagrees
// with the LOD that neighbor was itself last meshed at (prevents cracks
// at LOD boundaries, spec §9 Open Questions — no hysteresis dead zone is
// applied here, so this can oscillate right at the LoadDistance radius,
// which the spec explicitly allows).
func (c *Controller) dispatchMeshWork() {
	entities := c.store.ChunksInRadiusXZ(c.viewerCX, c.viewerCZ, c.cfg.RenderDistance, nil)

	for _, e := range entities {
		lod := c.lodFor(e.Coord)
		candidate := e.HasTag(world.TagDirty) ||
			(e.HasTag(world.TagLOD) && e.LOD != lod) ||
			c.neighborLODMismatch(e.Coord)
		if !candidate {
			continue
		}
		if _, inFlight := c.pendingMesh[e.Coord]; inFlight {
			continue
		}

		neighbors, complete := c.neighborBlocks(e.Coord)
		if !complete {
			// Leave Dirty (if set) so this chunk is retried once its
			// missing neighbor streams in; spec §4.6 phase D.
			continue
		}

		sent := c.pool.SubmitMesh(MeshRequest{
			EntityID:  e.ID,
			Coord:     e.Coord,
			Blocks:    cloneBlocks(e.Chunk.Blocks),
			Neighbors: neighbors,
			LOD:       lod,
		})
		if !sent {
			// Queue was full: leave Dirty/LOD untouched so this
			// candidate is retried next frame instead of being
			// silently forgotten (spec §7).
			continue
		}
		c.pendingMesh[e.Coord] = struct{}{}
		e.ClearTag(world.TagDirty)
		e.LOD = lod
		e.SetTag(world.TagLOD)
	}
}

// lodFor picks High LOD inside LoadDistance, Low otherwise (still inside
// RenderDistance, since dispatchMeshWork only ever considers chunks
// within that radius).
func (c *Controller) lodFor(coord world.ChunkCoord) world.LOD {
	dx := coord.X - c.viewerCX
	dz := coord.Z - c.viewerCZ
	loadSq := c.cfg.LoadDistance * c.cfg.LoadDistance
	if dx*dx+dz*dz > loadSq {
		return world.LODLow
	}
	return world.LODHigh
}

// neighborLODMismatch reports whether any of coord's present neighbors is
// currently meshed at an LOD other than what its own distance to the
// viewer would now require.
func (c *Controller) neighborLODMismatch(coord world.ChunkCoord) bool {
	for _, off := range neighborOffsets {
		n := c.store.Get(coord.Add(off[0], off[1], off[2]))
		if n == nil || !n.HasTag(world.TagLOD) {
			continue
		}
		if n.LOD != c.lodFor(n.Coord) {
			return true
		}
	}
	return false
}

var neighborOffsets = [6][3]int{
	world.FacePosX: {1, 0, 0},
	world.FaceNegX: {-1, 0, 0},
	world.FacePosY: {0, 1, 0},
	world.FaceNegY: {0, -1, 0},
	world.FacePosZ: {0, 0, 1},
	world.FaceNegZ: {0, 0, -1},
}

// neighborBlocks collects the six neighbor block snapshots for coord.
// complete is false if any neighbor whose Y falls inside
// [MinChunkY,MaxChunkY] (and so is expected to exist, not a permanent Air
// wall) hasn't loaded yet.
func (c *Controller) neighborBlocks(coord world.ChunkCoord) (nb meshing.NeighborBlocks, complete bool) {
	complete = true
	for face, off := range neighborOffsets {
		nc := coord.Add(off[0], off[1], off[2])
		e := c.store.Get(nc)
		if e == nil {
			if nc.Y >= c.cfg.MinChunkY && nc.Y <= c.cfg.MaxChunkY {
				complete = false
			}
			continue
		}
		nb[face] = cloneBlocks(e.Chunk.Blocks)
	}
	return nb, complete
}

// cloneBlocks copies a chunk's block array so the worker pool never
// aliases entity state a later frame might mutate concurrently (spec §5:
// "workers... receive block snapshots by value/clone").
func cloneBlocks(b *world.Blocks) *world.Blocks {
	raw := append([]world.BlockType(nil), b.Raw()...)
	return world.BlocksFromRaw(b.Dims, raw)
}

// SetBlock applies the Block Edit Protocol: write the block, mark the
// owning (and any bordered-neighbor) chunk dirty so the next Tick's
// dispatch phase re-meshes it.
func (c *Controller) SetBlock(x, y, z int, t world.BlockType) {
	c.store.SetBlock(x, y, z, t)
}

// Shutdown stops the worker pool, then walks every resident entity and
// flushes anything still TagModified to the cache, per spec §4.6: "walks
// every entity carrying Modified and saves it; failures are logged but do
// not block shutdown." It does not otherwise flush pending in-flight
// work; callers that need generation/meshing to settle first should wait
// for pendingGen/pendingMesh to drain via repeated Tick calls before
// calling Shutdown.
func (c *Controller) Shutdown() {
	c.pool.Shutdown()

	for _, e := range c.store.All() {
		if !e.HasTag(world.TagModified) {
			continue
		}
		if err := c.cache.Save(e.Coord, e.Chunk.Blocks); err != nil {
			log.Printf("streaming: controller: error saving modified chunk %v on shutdown: %v", e.Coord, err)
			continue
		}
		e.ClearTag(world.TagModified)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
