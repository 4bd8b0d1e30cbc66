package world

import (
	"testing"

	"mini-mc/internal/config"
)

func TestBlocksGetSetRoundTrip(t *testing.T) {
	b := NewBlocks(config.DefaultChunkDims)
	b.Set(3, 4, 5, BlockTypeSand)
	if got := b.Get(3, 4, 5); got != BlockTypeSand {
		t.Errorf("Get(3,4,5) = %v, want %v", got, BlockTypeSand)
	}
	if got := b.Get(0, 0, 0); got != BlockTypeAir {
		t.Errorf("untouched cell should be air, got %v", got)
	}
}

func TestBlocksOutOfBoundsIsAirAndIgnoredOnSet(t *testing.T) {
	b := NewBlocks(config.DefaultChunkDims)
	if got := b.Get(-1, 0, 0); got != BlockTypeAir {
		t.Errorf("out-of-bounds Get should return Air, got %v", got)
	}
	b.Set(-1, 0, 0, BlockTypeStone) // must not panic or corrupt memory
	if got := b.Get(0, 0, 0); got != BlockTypeAir {
		t.Errorf("out-of-bounds Set should not leak into valid cells")
	}
}

func TestChunkSetBlockTracksDirty(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 0, Y: 0, Z: 0}, config.DefaultChunkDims)
	c.SetClean()
	if c.IsDirty() {
		t.Fatal("freshly cleaned chunk should not be dirty")
	}
	c.SetBlock(1, 1, 1, BlockTypeWater)
	if !c.IsDirty() {
		t.Error("chunk should be dirty after a block write changes its contents")
	}
}

func TestChunkSetBlockSameValueDoesNotDirty(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 0, Y: 0, Z: 0}, config.DefaultChunkDims)
	c.SetBlock(0, 0, 0, BlockTypeAir) // already air
	c.SetClean()
	c.SetBlock(0, 0, 0, BlockTypeAir)
	if c.IsDirty() {
		t.Error("writing the same value should not mark the chunk dirty")
	}
}
