package world

import (
	"mini-mc/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Blocks is the flat block array backing a single chunk. Index order is
// y*(width*depth) + z*width + x, matching the reference chunk component's
// layout exactly so cache blobs and the mesh builder agree on layout
// without any translation step.
type Blocks struct {
	Dims config.ChunkDims
	data []BlockType
}

// NewBlocks allocates an all-air block array for the given dimensions.
func NewBlocks(dims config.ChunkDims) *Blocks {
	return &Blocks{Dims: dims, data: make([]BlockType, dims.Width*dims.Height*dims.Depth)}
}

func (b *Blocks) index(x, y, z int) int {
	return y*(b.Dims.Width*b.Dims.Depth) + z*b.Dims.Width + x
}

// InBounds reports whether (x,y,z) is a valid local coordinate.
func (b *Blocks) InBounds(x, y, z int) bool {
	return x >= 0 && x < b.Dims.Width && y >= 0 && y < b.Dims.Height && z >= 0 && z < b.Dims.Depth
}

// Get returns the block at local coordinate (x,y,z), or Air if out of
// bounds.
func (b *Blocks) Get(x, y, z int) BlockType {
	if !b.InBounds(x, y, z) {
		return BlockTypeAir
	}
	return b.data[b.index(x, y, z)]
}

// Set writes the block at local coordinate (x,y,z). Out-of-bounds writes
// are silently ignored, matching the reference chunk component's bounds
// check.
func (b *Blocks) Set(x, y, z int, t BlockType) {
	if !b.InBounds(x, y, z) {
		return
	}
	b.data[b.index(x, y, z)] = t
}

// Raw exposes the underlying flat array for cache encoding.
func (b *Blocks) Raw() []BlockType {
	return b.data
}

// BlocksFromRaw rebuilds a Blocks from a flat array previously produced by
// Raw, as the cache decode path does.
func BlocksFromRaw(dims config.ChunkDims, data []BlockType) *Blocks {
	return &Blocks{Dims: dims, data: data}
}

// Chunk is a positioned, mutable voxel volume plus the bookkeeping the
// Chunk Store needs: a dirty flag set whenever a block write changes the
// volume (including writes that land on the chunk's own border and so may
// affect a neighbor's meshing).
type Chunk struct {
	Coord ChunkCoord
	Blocks *Blocks
	dirty bool
}

// NewChunk creates an empty (all-air) chunk at coord with the given
// dimensions. New chunks start dirty: nothing has been meshed for them
// yet.
func NewChunk(coord ChunkCoord, dims config.ChunkDims) *Chunk {
	return &Chunk{Coord: coord, Blocks: NewBlocks(dims), dirty: true}
}

// GetBlock returns the block type at local coordinates (x,y,z).
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	return c.Blocks.Get(x, y, z)
}

// SetBlock sets the block type at local coordinates (x,y,z), marking the
// chunk dirty if the value actually changed.
func (c *Chunk) SetBlock(x, y, z int, t BlockType) {
	if c.Blocks.Get(x, y, z) == t {
		return
	}
	c.Blocks.Set(x, y, z, t)
	c.dirty = true
}

// IsAir reports whether the block at local coordinates (x,y,z) is air.
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z) == BlockTypeAir
}

// IsDirty reports whether the chunk has changed since it was last meshed.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean clears the dirty flag, called once the mesh builder has
// produced a mesh reflecting the chunk's current contents.
func (c *Chunk) SetClean() {
	c.dirty = false
}

// GetActiveBlocks returns the world-space position of every non-air block
// in this chunk. Intended for small diagnostic chunks/tests, not the hot
// meshing path.
func (c *Chunk) GetActiveBlocks() []mgl32.Vec3 {
	var positions []mgl32.Vec3
	ox, oy, oz := c.Coord.ChunkOrigin(c.Blocks.Dims.Width, c.Blocks.Dims.Height, c.Blocks.Dims.Depth)
	d := c.Blocks.Dims
	for x := 0; x < d.Width; x++ {
		for y := 0; y < d.Height; y++ {
			for z := 0; z < d.Depth; z++ {
				if c.Blocks.Get(x, y, z) != BlockTypeAir {
					positions = append(positions, mgl32.Vec3{
						float32(ox + x), float32(oy + y), float32(oz + z),
					})
				}
			}
		}
	}
	return positions
}
