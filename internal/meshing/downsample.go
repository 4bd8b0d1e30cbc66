package meshing

import (
	"log"

	"mini-mc/internal/config"
	"mini-mc/internal/world"
)

// LowLODFactor is the edge length of the super-cell the Low LOD pre-pass
// collapses into a single block, per spec §4.4's k^3 downsample.
const LowLODFactor = 2

// Downsample collapses factor^3 super-cells of b into single blocks, per
// spec §4.4: within each super-cell, solids are partitioned into "exposed"
// (at least one of their six neighbors, read from the full chunk, is Air)
// and "internal"; the most frequent exposed type wins (ties broken by
// lexicographic BlockType order), falling back to the most frequent
// internal type if no solid in the cell is exposed, and to Air if the
// cell has no solids at all. Downsample(b, 1) returns b unchanged,
// satisfying the identity law the LOD invariant requires. factor must
// evenly divide every chunk dimension (spec §8 Boundary behaviors); if it
// doesn't, Downsample logs and returns nil rather than guessing at a
// partial super-cell.
func Downsample(b *world.Blocks, factor int) *world.Blocks {
	if factor <= 1 {
		return b
	}
	d := b.Dims
	if d.Width%factor != 0 || d.Height%factor != 0 || d.Depth%factor != 0 {
		log.Printf("meshing: downsample factor %d does not divide chunk dims %+v, refusing", factor, d)
		return nil
	}
	outDims := config.ChunkDims{
		Width:  d.Width / factor,
		Height: d.Height / factor,
		Depth:  d.Depth / factor,
	}
	out := world.NewBlocks(outDims)

	exposedCounts := make(map[world.BlockType]int)
	internalCounts := make(map[world.BlockType]int)
	for ox := 0; ox < outDims.Width; ox++ {
		for oy := 0; oy < outDims.Height; oy++ {
			for oz := 0; oz < outDims.Depth; oz++ {
				for k := range exposedCounts {
					delete(exposedCounts, k)
				}
				for k := range internalCounts {
					delete(internalCounts, k)
				}
				for dx := 0; dx < factor; dx++ {
					for dy := 0; dy < factor; dy++ {
						for dz := 0; dz < factor; dz++ {
							x, y, z := ox*factor+dx, oy*factor+dy, oz*factor+dz
							bt := b.Get(x, y, z)
							if bt == world.BlockTypeAir {
								continue
							}
							if exposed(b, x, y, z) {
								exposedCounts[bt]++
							} else {
								internalCounts[bt]++
							}
						}
					}
				}
				rep := dominant(exposedCounts)
				if rep == world.BlockTypeAir {
					rep = dominant(internalCounts)
				}
				out.Set(ox, oy, oz, rep)
			}
		}
	}
	return out
}

// exposed reports whether the solid block at (x,y,z) has at least one
// Air neighbor within the same blocks array (out-of-bounds reads as Air,
// matching the chunk-boundary convention the rest of this package uses).
func exposed(b *world.Blocks, x, y, z int) bool {
	return b.Get(x+1, y, z) == world.BlockTypeAir ||
		b.Get(x-1, y, z) == world.BlockTypeAir ||
		b.Get(x, y+1, z) == world.BlockTypeAir ||
		b.Get(x, y-1, z) == world.BlockTypeAir ||
		b.Get(x, y, z+1) == world.BlockTypeAir ||
		b.Get(x, y, z-1) == world.BlockTypeAir
}

// dominant returns the highest-count key in counts, breaking ties by
// lexicographic BlockType order (spec §4.4), or Air if counts is empty.
func dominant(counts map[world.BlockType]int) world.BlockType {
	best := world.BlockTypeAir
	bestCount := 0
	for bt, n := range counts {
		if n > bestCount || (n == bestCount && bt < best) {
			best, bestCount = bt, n
		}
	}
	return best
}
