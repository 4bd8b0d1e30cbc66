package cache

import (
	"testing"

	"mini-mc/internal/config"
	"mini-mc/internal/world"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dims := config.DefaultChunkDims
	c, err := New(t.TempDir(), "test-world", dims)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	coord := world.ChunkCoord{X: 1, Y: 2, Z: -3}
	blocks := world.NewBlocks(dims)
	blocks.Set(0, 0, 0, world.BlockTypeGranite)
	blocks.Set(5, 5, 5, world.BlockTypeWater)

	if err := c.Save(coord, blocks); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := c.Load(coord)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil after Save")
	}
	for i, bt := range blocks.Raw() {
		if loaded.Raw()[i] != bt {
			t.Fatalf("round-trip mismatch at index %d: got %v, want %v", i, loaded.Raw()[i], bt)
		}
	}
}

func TestLoadMissingChunkReturnsNilNil(t *testing.T) {
	c, err := New(t.TempDir(), "test-world", config.DefaultChunkDims)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	loaded, err := c.Load(world.ChunkCoord{X: 99, Y: 99, Z: 99})
	if err != nil {
		t.Fatalf("Load of missing chunk should not error, got %v", err)
	}
	if loaded != nil {
		t.Fatal("Load of missing chunk should return nil")
	}
}

func TestDeleteThenLoadReturnsNil(t *testing.T) {
	dims := config.DefaultChunkDims
	c, err := New(t.TempDir(), "test-world", dims)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	coord := world.ChunkCoord{X: 0, Y: 0, Z: 0}
	if err := c.Save(coord, world.NewBlocks(dims)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := c.Delete(coord); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	loaded, err := c.Load(coord)
	if err != nil || loaded != nil {
		t.Fatalf("expected (nil, nil) after delete, got (%v, %v)", loaded, err)
	}
}

func TestDeleteMissingChunkIsNotAnError(t *testing.T) {
	c, err := New(t.TempDir(), "test-world", config.DefaultChunkDims)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Delete(world.ChunkCoord{X: 5, Y: 5, Z: 5}); err != nil {
		t.Fatalf("deleting a never-saved chunk should not error, got %v", err)
	}
}
