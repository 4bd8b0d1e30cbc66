package meshing

import (
	"mini-mc/internal/profiling"
	"mini-mc/internal/registry"
	"mini-mc/internal/world"
)

// NeighborBlocks holds the six chunks that border a center chunk, indexed
// by world.Face (FacePosX..FaceNegZ), used only to decide face visibility
// at the center chunk's boundary. A nil entry means that neighbor chunk
// isn't loaded; per the teacher's own cross-chunk visibility check, an
// unloaded neighbor is treated the same as one full of air (the face is
// drawn), so chunks never grow temporary holes while a neighbor streams
// in.
type NeighborBlocks [6]*world.Blocks

// maskCell is one cell of a 2D face mask: which block is showing a face
// here, which texture layer it uses, and which output buffer (opaque or
// transparent) it belongs in. A zero maskCell (blockType == BlockTypeAir)
// means no visible face.
type maskCell struct {
	blockType world.BlockType
	layer     int
}

func (m maskCell) empty() bool { return m.blockType == world.BlockTypeAir }

// Build produces the opaque and transparent meshes for a chunk's current
// block data at the given LOD. At LODLow, center and every present
// neighbor are downsampled by LowLODFactor before meshing, so a distant
// chunk's mesh has proportionally fewer quads. Build is a pure function of
// its arguments: the same blocks, neighbors and LOD always produce the
// same two meshes.
func Build(center *world.Blocks, neighbors NeighborBlocks, lod world.LOD) (opaque, transparent *Mesh) {
	defer profiling.Track("meshing.Build")()

	if lod == world.LODLow {
		center = Downsample(center, LowLODFactor)
		if center == nil {
			return nil, nil
		}
		for i, n := range neighbors {
			if n != nil {
				neighbors[i] = Downsample(n, LowLODFactor)
			}
		}
	}

	opaque, transparent = &Mesh{}, &Mesh{}
	buildDirection(center, neighbors, 1, 0, 0, opaque, transparent)
	buildDirection(center, neighbors, -1, 0, 0, opaque, transparent)
	buildDirection(center, neighbors, 0, 1, 0, opaque, transparent)
	buildDirection(center, neighbors, 0, -1, 0, opaque, transparent)
	buildDirection(center, neighbors, 0, 0, 1, opaque, transparent)
	buildDirection(center, neighbors, 0, 0, -1, opaque, transparent)
	return opaque, transparent
}

// faceOf returns the Face enumerator for a unit normal (nx,ny,nz).
func faceOf(nx, ny, nz int) world.Face {
	switch {
	case nx > 0:
		return world.FacePosX
	case nx < 0:
		return world.FaceNegX
	case ny > 0:
		return world.FacePosY
	case ny < 0:
		return world.FaceNegY
	case nz > 0:
		return world.FacePosZ
	default:
		return world.FaceNegZ
	}
}

// faceVisible implements the spec §4.4 visibility rule: a face shows when
// the neighbor is air, or when self is opaque-culling and the neighbor is
// not, or when self is non-opaque-culling and differs in type from the
// neighbor. Two different opaque-culling types (stone against dirt,
// andesite against granite) never show a face between them; two abutting
// blocks of the same non-opaque-culling type (water against water) don't
// either, but glass against water does.
func faceVisible(self, neighbor world.BlockType) bool {
	if neighbor == world.BlockTypeAir {
		return true
	}
	if self.OpaqueCulling() {
		return !neighbor.OpaqueCulling()
	}
	return self != neighbor
}

// neighborAt reads the block one step past (x,y,z) in direction
// (nx,ny,nz), crossing into the appropriate NeighborBlocks entry when the
// step leaves center's bounds. An unloaded neighbor chunk reads as air.
func neighborAt(center *world.Blocks, neighbors NeighborBlocks, x, y, z, nx, ny, nz int) world.BlockType {
	ax, ay, az := x+nx, y+ny, z+nz
	if center.InBounds(ax, ay, az) {
		return center.Get(ax, ay, az)
	}

	face := faceOf(nx, ny, nz)
	nb := neighbors[face]
	if nb == nil {
		return world.BlockTypeAir
	}

	d := center.Dims
	wx, wy, wz := ax, ay, az
	if wx < 0 {
		wx += d.Width
	} else if wx >= d.Width {
		wx -= d.Width
	}
	if wy < 0 {
		wy += d.Height
	} else if wy >= d.Height {
		wy -= d.Height
	}
	if wz < 0 {
		wz += d.Depth
	} else if wz >= d.Depth {
		wz -= d.Depth
	}
	return nb.Get(wx, wy, wz)
}

// buildDirection performs 2D greedy meshing across the plane perpendicular
// to (nx,ny,nz), one layer at a time along that axis.
func buildDirection(center *world.Blocks, neighbors NeighborBlocks, nx, ny, nz int, opaque, transparent *Mesh) {
	d := center.Dims
	face := faceOf(nx, ny, nz)

	switch {
	case nx != 0:
		for x := 0; x < d.Width; x++ {
			mask := buildMask(d.Height, d.Depth, face, func(u, v int) (world.BlockType, bool) {
				bt := center.Get(x, u, v)
				if bt == world.BlockTypeAir {
					return bt, false
				}
				return bt, faceVisible(bt, neighborAt(center, neighbors, x, u, v, nx, ny, nz))
			})
			sweepMask(mask, d.Height, d.Depth, func(u0, v0, uLen, vLen int, cell maskCell) {
				emitYZQuad(x, u0, v0, uLen, vLen, nx, cell, opaqueOrTransparent(cell.blockType, opaque, transparent))
			})
		}
	case ny != 0:
		for y := 0; y < d.Height; y++ {
			mask := buildMask(d.Width, d.Depth, face, func(u, v int) (world.BlockType, bool) {
				bt := center.Get(u, y, v)
				if bt == world.BlockTypeAir {
					return bt, false
				}
				return bt, faceVisible(bt, neighborAt(center, neighbors, u, y, v, nx, ny, nz))
			})
			sweepMask(mask, d.Width, d.Depth, func(u0, v0, uLen, vLen int, cell maskCell) {
				emitXZQuad(u0, y, v0, uLen, vLen, ny, cell, opaqueOrTransparent(cell.blockType, opaque, transparent))
			})
		}
	default:
		for z := 0; z < d.Depth; z++ {
			mask := buildMask(d.Width, d.Height, face, func(u, v int) (world.BlockType, bool) {
				bt := center.Get(u, v, z)
				if bt == world.BlockTypeAir {
					return bt, false
				}
				return bt, faceVisible(bt, neighborAt(center, neighbors, u, v, z, nx, ny, nz))
			})
			sweepMask(mask, d.Width, d.Height, func(u0, v0, uLen, vLen int, cell maskCell) {
				emitXYQuad(u0, v0, z, uLen, vLen, nz, cell, opaqueOrTransparent(cell.blockType, opaque, transparent))
			})
		}
	}
}

func opaqueOrTransparent(bt world.BlockType, opaque, transparent *Mesh) *Mesh {
	if bt.OpaqueCulling() {
		return opaque
	}
	return transparent
}

// buildMask samples sample(u,v) over a uSize x vSize grid, keeping a
// maskCell only where the face is visible.
func buildMask(uSize, vSize int, face world.Face, sample func(u, v int) (world.BlockType, bool)) []maskCell {
	mask := make([]maskCell, uSize*vSize)
	for u := 0; u < uSize; u++ {
		for v := 0; v < vSize; v++ {
			bt, visible := sample(u, v)
			if !visible {
				continue
			}
			mask[u*vSize+v] = maskCell{blockType: bt, layer: registry.GetTextureLayer(bt, face)}
		}
	}
	return mask
}

// sweepMask runs the standard greedy-merge scan over a uSize x vSize mask:
// find the next unconsumed cell, grow it across v then across u while the
// mask matches, emit one quad for the merged rectangle, and zero it out.
func sweepMask(mask []maskCell, uSize, vSize int, emit func(u0, v0, uLen, vLen int, cell maskCell)) {
	for i := 0; i < len(mask); i++ {
		if mask[i].empty() {
			continue
		}
		cell := mask[i]
		u0, v0 := i/vSize, i%vSize

		vLen := 1
		for v1 := v0 + 1; v1 < vSize && mask[u0*vSize+v1] == cell; v1++ {
			vLen++
		}

		uLen := 1
	grow:
		for u1 := u0 + 1; u1 < uSize; u1++ {
			for v1 := v0; v1 < v0+vLen; v1++ {
				if mask[u1*vSize+v1] != cell {
					break grow
				}
			}
			uLen++
		}

		emit(u0, v0, uLen, vLen, cell)

		for u1 := u0; u1 < u0+uLen; u1++ {
			for v1 := v0; v1 < v0+vLen; v1++ {
				mask[u1*vSize+v1] = maskCell{}
			}
		}
	}
}

func quadUV(uLen, vLen int) [4][2]float32 {
	w, h := float32(uLen), float32(vLen)
	return [4][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

// emitYZQuad emits a face perpendicular to X at local slice x, covering
// the rectangle [u0,u0+uLen) along Y and [v0,v0+vLen) along Z.
func emitYZQuad(x, u0, v0, uLen, vLen, nx int, cell maskCell, dst *Mesh) {
	fx := float32(x)
	if nx > 0 {
		fx = float32(x + 1)
	}
	y0, y1 := float32(u0), float32(u0+uLen)
	z0, z1 := float32(v0), float32(v0+vLen)
	uv := quadUV(uLen, vLen)
	if nx > 0 {
		dst.appendQuad([4][3]float32{{fx, y0, z0}, {fx, y1, z0}, {fx, y1, z1}, {fx, y0, z1}}, uv, cell.layer)
	} else {
		dst.appendQuad([4][3]float32{{fx, y0, z0}, {fx, y0, z1}, {fx, y1, z1}, {fx, y1, z0}}, uv, cell.layer)
	}
}

// emitXZQuad emits a face perpendicular to Y at local slice y, covering
// the rectangle [u0,u0+uLen) along X and [v0,v0+vLen) along Z.
func emitXZQuad(u0, y, v0, uLen, vLen, ny int, cell maskCell, dst *Mesh) {
	fy := float32(y)
	if ny > 0 {
		fy = float32(y + 1)
	}
	x0, x1 := float32(u0), float32(u0+uLen)
	z0, z1 := float32(v0), float32(v0+vLen)
	uv := quadUV(uLen, vLen)
	if ny > 0 {
		dst.appendQuad([4][3]float32{{x0, fy, z0}, {x0, fy, z1}, {x1, fy, z1}, {x1, fy, z0}}, uv, cell.layer)
	} else {
		dst.appendQuad([4][3]float32{{x0, fy, z0}, {x1, fy, z0}, {x1, fy, z1}, {x0, fy, z1}}, uv, cell.layer)
	}
}

// emitXYQuad emits a face perpendicular to Z at local slice z, covering
// the rectangle [u0,u0+uLen) along X and [v0,v0+vLen) along Y.
func emitXYQuad(u0, v0, z, uLen, vLen, nz int, cell maskCell, dst *Mesh) {
	fz := float32(z)
	if nz > 0 {
		fz = float32(z + 1)
	}
	x0, x1 := float32(u0), float32(u0+uLen)
	y0, y1 := float32(v0), float32(v0+vLen)
	uv := quadUV(uLen, vLen)
	if nz > 0 {
		dst.appendQuad([4][3]float32{{x0, y0, fz}, {x1, y0, fz}, {x1, y1, fz}, {x0, y1, fz}}, uv, cell.layer)
	} else {
		dst.appendQuad([4][3]float32{{x0, y0, fz}, {x0, y1, fz}, {x1, y1, fz}, {x1, y0, fz}}, uv, cell.layer)
	}
}
