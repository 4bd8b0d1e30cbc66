package world

import (
	"sync"

	"mini-mc/internal/config"
	"mini-mc/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// LOD is the level of detail a chunk entity's mesh was last built at.
type LOD int

const (
	LODHigh LOD = iota // full-resolution greedy mesh
	LODLow              // downsampled super-cell mesh
)

// Tag is a bit in an entity's component set. The store keeps these as a
// bitmask instead of a real ECS archetype table (Design Notes: "a scheduler,
// not an ECS" — there's no query language here, just set/has/clear on a
// handful of well-known flags per chunk entity).
type Tag uint8

const (
	TagDirty Tag = 1 << iota // blocks changed since last mesh
	TagModified              // saved-to-cache state is stale
	TagLOD                   // LOD field is meaningful (entity has been meshed at least once)
	TagRenderable            // entity currently has mesh buffers the renderer owns
	TagTransform             // entity has a world-space transform assigned
)

// Entity is a chunk's row in the store: a stable identity plus whichever
// of its optional components (LOD, Renderable handle, Transform) are
// currently present, tracked by Tags.
type Entity struct {
	ID    uuid.UUID
	Coord ChunkCoord
	Chunk *Chunk

	Tags Tag
	LOD  LOD

	// Transform is the chunk's world-space render origin; meaningful only
	// when TagTransform is set.
	Transform mgl32.Vec3

	// RenderHandle is whatever opaque token the Renderer returned from
	// Upload; meaningful only when TagRenderable is set.
	RenderHandle any
}

func (e *Entity) HasTag(t Tag) bool { return e.Tags&t != 0 }
func (e *Entity) SetTag(t Tag)      { e.Tags |= t }
func (e *Entity) ClearTag(t Tag)    { e.Tags &^= t }

// ChunkStore holds every loaded chunk entity, indexed both by coordinate
// (the common lookup) and by a per-column slice (for radius scans), the
// same two-index shape the reference chunk store used, generalized from a
// bare map[ChunkCoord]*Chunk to a map[ChunkCoord]*Entity with tags.
type ChunkStore struct {
	mu       sync.RWMutex
	entities map[ChunkCoord]*Entity
	colIndex map[[2]int][]*Entity // indexed by chunkY; nil entries are holes
	modCount uint64
	dims     config.ChunkDims
}

// NewChunkStore creates an empty store for chunks of the given dimensions.
func NewChunkStore(dims config.ChunkDims) *ChunkStore {
	return &ChunkStore{
		entities: make(map[ChunkCoord]*Entity),
		colIndex: make(map[[2]int][]*Entity),
		dims:     dims,
	}
}

// Spawn creates a new entity wrapping chunk at coord, tagged Dirty (it has
// never been meshed). Returns the existing entity if one is already
// present at coord.
func (cs *ChunkStore) Spawn(coord ChunkCoord, chunk *Chunk) *Entity {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if e, ok := cs.entities[coord]; ok {
		return e
	}
	e := &Entity{ID: uuid.New(), Coord: coord, Chunk: chunk, Tags: TagDirty}
	cs.entities[coord] = e
	cs.modCount++
	cs.insertColumn(coord, e)
	return e
}

func (cs *ChunkStore) insertColumn(coord ChunkCoord, e *Entity) {
	key := coord.ColumnKey()
	col := cs.colIndex[key]
	if coord.Y >= 0 {
		if len(col) <= coord.Y {
			n := make([]*Entity, coord.Y+1)
			copy(n, col)
			col = n
		}
		col[coord.Y] = e
		cs.colIndex[key] = col
	}
}

// Despawn removes the entity at coord, if present.
func (cs *ChunkStore) Despawn(coord ChunkCoord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.entities[coord]; !ok {
		return
	}
	delete(cs.entities, coord)
	cs.modCount++
	cs.removeColumn(coord)
}

func (cs *ChunkStore) removeColumn(coord ChunkCoord) {
	key := coord.ColumnKey()
	col, ok := cs.colIndex[key]
	if !ok || coord.Y < 0 || coord.Y >= len(col) {
		return
	}
	col[coord.Y] = nil
	end := len(col)
	for end > 0 && col[end-1] == nil {
		end--
	}
	if end == 0 {
		delete(cs.colIndex, key)
	} else {
		cs.colIndex[key] = col[:end]
	}
}

// Get returns the entity at coord, or nil if none is loaded.
func (cs *ChunkStore) Get(coord ChunkCoord) *Entity {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.entities[coord]
}

// Has reports whether a chunk entity is loaded at coord.
func (cs *ChunkStore) Has(coord ChunkCoord) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	_, ok := cs.entities[coord]
	return ok
}

// SetBlock writes a block at world coordinates, creating no chunk if one
// isn't already loaded there, and marks the owning chunk (and any
// neighbor chunk sharing the touched face) TagDirty per the Block Edit
// Protocol.
func (cs *ChunkStore) SetBlock(x, y, z int, t BlockType) {
	coord := WorldToChunk(x, y, z, cs.dims.Width, cs.dims.Height, cs.dims.Depth)
	cs.mu.RLock()
	e, ok := cs.entities[coord]
	cs.mu.RUnlock()
	if !ok {
		return
	}

	lx, ly, lz := WorldToLocal(x, y, z, cs.dims.Width, cs.dims.Height, cs.dims.Depth)
	e.Chunk.SetBlock(lx, ly, lz, t)
	e.SetTag(TagDirty | TagModified)

	cs.markBorderNeighborDirty(coord, lx, 0, cs.dims.Width-1, -1, 0, 0)
	cs.markBorderNeighborDirty(coord, ly, 0, cs.dims.Height-1, 0, -1, 0)
	cs.markBorderNeighborDirty(coord, lz, 0, cs.dims.Depth-1, 0, 0, -1)
}

func (cs *ChunkStore) markBorderNeighborDirty(coord ChunkCoord, local, lo, hi, ndx, ndy, ndz int) {
	if local == lo {
		cs.markDirty(coord.Add(ndx, ndy, ndz))
	} else if local == hi {
		cs.markDirty(coord.Add(-ndx, -ndy, -ndz))
	}
}

// MarkNeighborsDirty sets TagDirty on each of coord's six neighbors that
// currently has an entity, per spec §4.1's "Dirty is set when... any of
// its six neighbors transitions from absent->present" — called from the
// neighbor's point of view right after coord itself is spawned.
func (cs *ChunkStore) MarkNeighborsDirty(coord ChunkCoord) {
	offsets := [6][3]int{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for _, off := range offsets {
		cs.markDirty(coord.Add(off[0], off[1], off[2]))
	}
}

func (cs *ChunkStore) markDirty(coord ChunkCoord) {
	cs.mu.RLock()
	e, ok := cs.entities[coord]
	cs.mu.RUnlock()
	if ok {
		e.SetTag(TagDirty)
	}
}

// GetBlock reads the block at world coordinates, returning Air if no
// chunk is loaded there.
func (cs *ChunkStore) GetBlock(x, y, z int) BlockType {
	coord := WorldToChunk(x, y, z, cs.dims.Width, cs.dims.Height, cs.dims.Depth)
	cs.mu.RLock()
	e, ok := cs.entities[coord]
	cs.mu.RUnlock()
	if !ok {
		return BlockTypeAir
	}
	lx, ly, lz := WorldToLocal(x, y, z, cs.dims.Width, cs.dims.Height, cs.dims.Depth)
	return e.Chunk.GetBlock(lx, ly, lz)
}

// ModCount returns the current add/remove generation counter, used by
// callers that want to detect structural changes without diffing sets.
func (cs *ChunkStore) ModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// ChunksInRadiusXZ appends every loaded entity within radius chunks (disk
// distance, XZ plane only) of column (cx,cz) into dst.
func (cs *ChunkStore) ChunksInRadiusXZ(cx, cz, radius int, dst []*Entity) []*Entity {
	defer profiling.Track("world.ChunksInRadiusXZ")()
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			col, ok := cs.colIndex[[2]int{cx + dx, cz + dz}]
			if !ok {
				continue
			}
			for _, e := range col {
				if e != nil {
					dst = append(dst, e)
				}
			}
		}
	}
	return dst
}

// EvictOutsideXZ removes every entity whose column lies strictly outside
// radius chunks of (cx,cz). Returns the removed entities so the caller can
// run cache-save/unload side effects before they're gone.
func (cs *ChunkStore) EvictOutsideXZ(cx, cz, radius int) []*Entity {
	defer profiling.Track("world.EvictOutsideXZ")()
	cs.mu.Lock()
	defer cs.mu.Unlock()
	var removed []*Entity
	for coord, e := range cs.entities {
		dx := coord.X - cx
		dz := coord.Z - cz
		if dx*dx+dz*dz > radius*radius {
			removed = append(removed, e)
			delete(cs.entities, coord)
			cs.modCount++
			cs.removeColumn(coord)
		}
	}
	return removed
}

// All returns every loaded entity. Intended for small-scale diagnostics
// and tests, not the per-frame hot path.
func (cs *ChunkStore) All() []*Entity {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]*Entity, 0, len(cs.entities))
	for _, e := range cs.entities {
		out = append(out, e)
	}
	return out
}
