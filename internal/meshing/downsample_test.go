package meshing

import (
	"testing"

	"mini-mc/internal/config"
	"mini-mc/internal/world"
)

func TestDownsampleIdentityLaw(t *testing.T) {
	dims := config.DefaultChunkDims
	b := world.NewBlocks(dims)
	b.Set(1, 1, 1, world.BlockTypeStone)

	out := Downsample(b, 1)
	if out != b {
		t.Fatal("Downsample(b, 1) must return b unchanged")
	}
}

func TestDownsamplePicksDominantBlock(t *testing.T) {
	dims := config.ChunkDims{Width: 4, Height: 2, Depth: 2}
	b := world.NewBlocks(dims)
	// Fill a 2x2x2 super-cell mostly with stone, one cell dirt.
	b.Set(0, 0, 0, world.BlockTypeStone)
	b.Set(1, 0, 0, world.BlockTypeStone)
	b.Set(0, 1, 0, world.BlockTypeStone)
	b.Set(1, 1, 0, world.BlockTypeDirt)
	b.Set(0, 0, 1, world.BlockTypeStone)
	b.Set(1, 0, 1, world.BlockTypeStone)
	b.Set(0, 1, 1, world.BlockTypeAir)
	b.Set(1, 1, 1, world.BlockTypeAir)

	out := Downsample(b, 2)
	if got := out.Get(0, 0, 0); got != world.BlockTypeStone {
		t.Errorf("expected dominant block Stone, got %v", got)
	}
}

// TestDownsampleRejectsIndivisibleFactor is spec §8's boundary behavior:
// a factor that doesn't evenly divide every chunk dimension returns nil
// instead of guessing at a partial super-cell.
func TestDownsampleRejectsIndivisibleFactor(t *testing.T) {
	dims := config.ChunkDims{Width: 5, Height: 4, Depth: 4}
	b := world.NewBlocks(dims)

	if out := Downsample(b, 2); out != nil {
		t.Fatalf("expected nil for a factor that doesn't divide Width=5, got %+v", out)
	}
}

func TestDownsampleAllAirStaysAir(t *testing.T) {
	dims := config.DefaultChunkDims
	b := world.NewBlocks(dims)
	out := Downsample(b, LowLODFactor)
	for _, bt := range out.Raw() {
		if bt != world.BlockTypeAir {
			t.Fatalf("expected all-air downsample to stay air, got %v", bt)
		}
	}
}
