package world

import (
	"math"

	"mini-mc/internal/config"
)

// WorldGenerator is a pure function from (seed, coord) to block data: two
// calls with the same config and coordinate always produce bit-identical
// output, which is what lets worker goroutines share one generator value
// with no locking and lets the cache treat "regenerate" and "load from
// disk" as interchangeable (spec's round-trip law). It carries its seed
// and noise tuning as plain fields, not the teacher's global
// sync.RWMutex-guarded settings — see SPEC_FULL.md §0.
type WorldGenerator struct {
	cfg  config.WorldGenConfig
	dims config.ChunkDims
}

// NewWorldGenerator builds a generator from the given tuning and chunk
// dimensions.
func NewWorldGenerator(cfg config.WorldGenConfig, dims config.ChunkDims) *WorldGenerator {
	return &WorldGenerator{cfg: cfg, dims: dims}
}

// Generate produces the block data for the chunk at coord. The result
// depends only on g's fields and coord.
func (g *WorldGenerator) Generate(coord ChunkCoord) *Blocks {
	blocks := NewBlocks(g.dims)
	ox, oy, oz := coord.ChunkOrigin(g.dims.Width, g.dims.Height, g.dims.Depth)

	for lx := 0; lx < g.dims.Width; lx++ {
		for lz := 0; lz < g.dims.Depth; lz++ {
			wx := ox + lx
			wz := oz + lz

			height := g.terrainHeight(wx, wz)
			rough, steep := g.roughnessAndSteepness(wx, wz, height)
			gravel := g.seabedGravel(wx, wz)
			ice := g.icePatch(wx, wz)

			for ly := 0; ly < g.dims.Height; ly++ {
				wy := oy + ly
				blocks.Set(lx, ly, lz, g.classify(wx, wy, wz, height, rough, steep, gravel, ice))
			}
		}
	}
	return blocks
}

// terrainHeight implements the reference generator's exact formula:
// a base FBM height field, a mountain envelope gated on how far above sea
// level the base height already sits, and a roughness contribution.
func (g *WorldGenerator) terrainHeight(wx, wz int) int {
	c := g.cfg
	fx, fz := float64(wx), float64(wz)

	baseNoise := fbm2D(fx*c.BaseFreq, fz*c.BaseFreq, c.WorldSeed, 4, 0.5, 2.0)
	baseH := float64(c.SeaLevel) + baseNoise*c.BaseAmp

	mountainNoise := fbm2D(fx*c.MountainFreq, fz*c.MountainFreq, c.WorldSeed+1, 5, 0.5, 2.0)
	mFactor := clamp01((baseH-float64(c.SeaLevel))/(c.BaseAmp*0.6))
	mFactor = mFactor * mFactor
	mountainH := math.Abs(mountainNoise) * c.MountainAmp * mFactor

	roughnessNoise := fbm2D(fx*c.RoughnessFreq, fz*c.RoughnessFreq, c.WorldSeed+2, 3, 0.5, 2.0)
	roughnessH := roughnessNoise * c.RoughnessAmp

	final := baseH + mountainH + roughnessH
	h := int(math.Round(final))
	if h < 1 {
		h = 1
	}
	if h > maxTerrainHeight {
		h = maxTerrainHeight
	}
	return h
}

// roughnessAndSteepness reports whether the surface at (wx,wz) is rough
// (noisy terrain, ported from the reference's exposed-stone gate) and
// steep (its height differs sharply from its +X/+Z neighbor), both of
// which push the surface block toward exposed Stone instead of grass/dirt.
func (g *WorldGenerator) roughnessAndSteepness(wx, wz, height int) (rough, steep bool) {
	c := g.cfg
	fx, fz := float64(wx), float64(wz)
	roughnessNoise := fbm2D(fx*c.RoughnessFreq, fz*c.RoughnessFreq, c.WorldSeed+2, 3, 0.5, 2.0)
	rough = math.Abs(roughnessNoise)*c.RoughnessAmp > c.RoughnessAmp*c.ExposedStoneThreshold

	hx := g.terrainHeight(wx+1, wz)
	hz := g.terrainHeight(wx, wz+1)
	diffX := abs(hx - height)
	diffZ := abs(hz - height)
	steep = max(diffX, diffZ) > c.DirtDepth
	return rough, steep
}

// seabedGravel is a single-octave 2D field (the reference's plain Perlin,
// not an Fbm wrapper) deciding whether an underwater surface block shows
// gravel instead of sand.
func (g *WorldGenerator) seabedGravel(wx, wz int) bool {
	v := perlin2D(float64(wx)*g.cfg.SeabedGravelFreq, float64(wz)*g.cfg.SeabedGravelFreq, g.cfg.WorldSeed+3)
	return v > g.cfg.SeabedGravelThreshold
}

// icePatch is a single-octave 2D field deciding whether the layer just
// above a surface at or above snow level becomes ice.
func (g *WorldGenerator) icePatch(wx, wz int) bool {
	v := perlin2D(float64(wx)*g.cfg.IcePatchFreq, float64(wz)*g.cfg.IcePatchFreq, g.cfg.WorldSeed+4)
	return v > g.cfg.IcePatchThreshold
}

// stoneVariation is the 3D field that bands deep stone into andesite,
// granite and diorite pockets via fixed thresholds (0.3, -0.1, -0.5),
// taken directly from the reference stone-variation cascade.
func (g *WorldGenerator) stoneVariation(wx, wy, wz int) float64 {
	c := g.cfg
	return valueNoise3D(
		float64(wx)*c.StoneVariationFreq,
		float64(wy)*c.StoneVariationFreq,
		float64(wz)*c.StoneVariationFreq,
		c.WorldSeed+5,
	)
}

// classify is the per-block cascade: above the terrain surface the column
// is air, water, or ice; at the surface it's whichever block the biome-ish
// rules above pick; below the surface it's dirt-layer or deep stone,
// itself banded into andesite/granite/diorite by stoneVariation.
func (g *WorldGenerator) classify(wx, wy, wz, height int, rough, steep, gravel, ice bool) BlockType {
	c := g.cfg

	if wy > height {
		if ice && wy == height+1 && height >= c.SnowLevel {
			return BlockTypeIce
		}
		if wy <= c.SeaLevel {
			return BlockTypeWater
		}
		return BlockTypeAir
	}

	if wy == height {
		switch {
		case height < c.SeaLevel:
			if gravel {
				return BlockTypeGravel
			}
			return BlockTypeSand
		case height >= c.SnowLevel:
			return BlockTypeSnow
		case rough || steep:
			return BlockTypeStone
		default:
			return BlockTypeGrassyDirt
		}
	}

	if wy > height-c.DirtDepth {
		switch {
		case height >= c.SnowLevel:
			return BlockTypeSnowyDirt
		case rough:
			return BlockTypeStone
		default:
			return BlockTypeDirt
		}
	}

	v := g.stoneVariation(wx, wy, wz)
	switch {
	case v > 0.3:
		return BlockTypeAndesite
	case v > -0.1:
		return BlockTypeStone
	case v > -0.5:
		return BlockTypeGranite
	default:
		return BlockTypeDiorite
	}
}

// maxTerrainHeight caps generated height at a plausible world ceiling
// (255, matching the reference generator's clamp to [1,255]).
const maxTerrainHeight = 255

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
