// Package registry holds the read-only, process-global mapping from block
// types to their texture names and packed texture-array layer indices. It
// is populated once at startup (InitRegistry) and from then on only read,
// so worker goroutines can share it without locking — the same contract
// the teacher's block registry relies on.
package registry

import (
	"log"
	"sync"

	"mini-mc/internal/world"
)

// BlockDefinition defines the properties of a block type. Textures is
// ordered [+Y, -Y, +X, -X, +Z, -Z]; index it with Face.TextureSlot().
type BlockDefinition struct {
	ID       world.BlockType
	Name     string
	Textures [6]string
}

// TextureName returns the texture name this block shows on face f.
func (d *BlockDefinition) TextureName(f world.Face) string {
	return d.Textures[f.TextureSlot()]
}

var (
	Blocks       = make(map[world.BlockType]*BlockDefinition)
	BlockNames   = make(map[string]world.BlockType)
	TextureNames []string
	TextureMap   = make(map[string]int) // texture name -> packed-array layer
)

func RegisterBlock(def *BlockDefinition) {
	Blocks[def.ID] = def
	BlockNames[def.Name] = def.ID
	for _, tex := range def.Textures {
		registerTexture(tex)
	}
}

func registerTexture(name string) {
	if name == "" {
		return
	}
	if _, exists := TextureMap[name]; !exists {
		TextureMap[name] = len(TextureNames)
		TextureNames = append(TextureNames, name)
	}
}

// uniform builds a Textures array that shows the same texture on all six
// faces, the common case for stone-like blocks.
func uniform(name string) [6]string {
	return [6]string{name, name, name, name, name, name}
}

// InitRegistry registers every BlockType's texture names. Must run before
// any call to GetTextureLayer or the mesh builder.
func InitRegistry() {
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeAir, Name: "air"})

	RegisterBlock(&BlockDefinition{ID: world.BlockTypeDirt, Name: "dirt", Textures: uniform("dirt.png")})

	RegisterBlock(&BlockDefinition{
		ID:   world.BlockTypeGrassyDirt,
		Name: "grassy_dirt",
		Textures: [6]string{
			"grass_top.png", "dirt.png", "grass_side.png", "grass_side.png", "grass_side.png", "grass_side.png",
		},
	})

	RegisterBlock(&BlockDefinition{ID: world.BlockTypeStone, Name: "stone", Textures: uniform("stone.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeSnow, Name: "snow", Textures: uniform("snow.png")})

	RegisterBlock(&BlockDefinition{
		ID:   world.BlockTypeSnowyDirt,
		Name: "snowy_dirt",
		Textures: [6]string{
			"snow.png", "dirt.png", "snow_side.png", "snow_side.png", "snow_side.png", "snow_side.png",
		},
	})

	RegisterBlock(&BlockDefinition{ID: world.BlockTypeSand, Name: "sand", Textures: uniform("sand.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeGlass, Name: "glass", Textures: uniform("glass.png")})

	RegisterBlock(&BlockDefinition{
		ID:   world.BlockTypeLog,
		Name: "log",
		Textures: [6]string{
			"log_top.png", "log_top.png", "log_side.png", "log_side.png", "log_side.png", "log_side.png",
		},
	})

	RegisterBlock(&BlockDefinition{ID: world.BlockTypePlanks, Name: "planks", Textures: uniform("planks.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeLeaves, Name: "leaves", Textures: uniform("leaves.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeWater, Name: "water", Textures: uniform("water.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeIce, Name: "ice", Textures: uniform("ice.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeGravel, Name: "gravel", Textures: uniform("gravel.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeAndesite, Name: "andesite", Textures: uniform("andesite.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeGranite, Name: "granite", Textures: uniform("granite.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeDiorite, Name: "diorite", Textures: uniform("diorite.png")})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeCobblestone, Name: "cobblestone", Textures: uniform("cobblestone.png")})
}

var warnedMissing sync.Map // block name -> struct{}; logs each missing mapping once

// GetTextureLayer returns the packed texture-array layer index for a block
// shown on face f, or 0 (the fallback/error texture slot) if the block or
// its texture has not been registered. A missing mapping is logged once
// per block type (spec §7: "warned once; face drawn with layer 0").
func GetTextureLayer(blockType world.BlockType, f world.Face) int {
	def, ok := Blocks[blockType]
	if !ok {
		warnMissingOnce(blockType.String())
		return 0
	}
	if idx, ok := TextureMap[def.TextureName(f)]; ok {
		return idx
	}
	warnMissingOnce(def.Name)
	return 0
}

func warnMissingOnce(name string) {
	if _, loaded := warnedMissing.LoadOrStore(name, struct{}{}); !loaded {
		log.Printf("registry: no texture mapping for block %q, falling back to layer 0", name)
	}
}
