package world

// BlockType enumerates every voxel kind the world generator and mesh
// builder know about. The set and ordering matches the reference
// implementation's block component one-for-one, including variants (Glass,
// Log, Planks, Leaves, Cobblestone) no generator rule currently emits — they are
// kept so the registry has a complete texture mapping ready for a renderer.
type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeGrassyDirt
	BlockTypeStone
	BlockTypeSnow
	BlockTypeSnowyDirt
	BlockTypeSand
	BlockTypeGlass
	BlockTypeLog
	BlockTypePlanks
	BlockTypeLeaves
	BlockTypeWater
	BlockTypeIce
	BlockTypeGravel
	BlockTypeAndesite
	BlockTypeGranite
	BlockTypeDiorite
	BlockTypeCobblestone

	blockTypeCount
)

// IsSolid reports whether the block occupies its full cube; everything but
// Air is solid, including the non-opaque-culling types like Water, Glass
// and Leaves (those differ only in OpaqueCulling, not in solidity).
func (b BlockType) IsSolid() bool {
	return b != BlockTypeAir
}

// OpaqueCulling reports whether the block hides faces like an opaque cube.
// The mesh builder skips the face between two opaque-culling blocks of any
// types and puts opaque-culling faces in the opaque mesh. Glass, water, ice
// and leaves are not opaque-culling: their faces go in the transparent
// mesh, and a face of one of them is drawn against any other type but not
// against the same type (water against water shows no face).
func (b BlockType) OpaqueCulling() bool {
	switch b {
	case BlockTypeGlass, BlockTypeWater, BlockTypeIce, BlockTypeLeaves:
		return false
	default:
		return true
	}
}

// Valid reports whether b is one of the known enumerators.
func (b BlockType) Valid() bool {
	return b < blockTypeCount
}

// String renders the block's registry name for logs and test failures.
func (b BlockType) String() string {
	if name, ok := blockNames[b]; ok {
		return name
	}
	return "unknown"
}

var blockNames = map[BlockType]string{
	BlockTypeAir:        "air",
	BlockTypeDirt:       "dirt",
	BlockTypeGrassyDirt: "grassy_dirt",
	BlockTypeStone:      "stone",
	BlockTypeSnow:       "snow",
	BlockTypeSnowyDirt:  "snowy_dirt",
	BlockTypeSand:       "sand",
	BlockTypeGlass:      "glass",
	BlockTypeLog:        "log",
	BlockTypePlanks:     "planks",
	BlockTypeLeaves:     "leaves",
	BlockTypeWater:      "water",
	BlockTypeIce:        "ice",
	BlockTypeGravel:     "gravel",
	BlockTypeAndesite:   "andesite",
	BlockTypeGranite:    "granite",
	BlockTypeDiorite:    "diorite",
	BlockTypeCobblestone: "cobblestone",
}

// Face identifies one of the six axis-aligned directions a block can show a
// face in. The numbering is the canonical order the mesh builder iterates
// in and that chunk neighbor lookups key their 6-element arrays by.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Opposite returns the face pointing the opposite direction, used when a
// block looks across a chunk boundary into a neighbor chunk's near face.
func (f Face) Opposite() Face {
	switch f {
	case FacePosX:
		return FaceNegX
	case FaceNegX:
		return FacePosX
	case FacePosY:
		return FaceNegY
	case FaceNegY:
		return FacePosY
	case FacePosZ:
		return FaceNegZ
	default:
		return FacePosZ
	}
}

// Normal returns the unit outward direction of the face as (dx, dy, dz).
func (f Face) Normal() (dx, dy, dz int) {
	switch f {
	case FacePosX:
		return 1, 0, 0
	case FaceNegX:
		return -1, 0, 0
	case FacePosY:
		return 0, 1, 0
	case FaceNegY:
		return 0, -1, 0
	case FacePosZ:
		return 0, 0, 1
	default:
		return 0, 0, -1
	}
}

// textureSlot maps a Face to the index into a block's 6-entry texture-name
// array, which is stored in [+Y, -Y, +X, -X, +Z, -Z] order (top, bottom,
// then the four sides) to match the reference texture manager's layout.
var textureSlot = [6]int{2, 3, 0, 1, 4, 5}

// TextureSlot returns the texture-name array index for face f.
func (f Face) TextureSlot() int {
	return textureSlot[f]
}
