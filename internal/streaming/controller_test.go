package streaming

import (
	"testing"
	"time"

	"mini-mc/internal/cache"
	"mini-mc/internal/config"
	"mini-mc/internal/registry"
	"mini-mc/internal/render"
	"mini-mc/internal/world"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	registry.InitRegistry()

	cfg := config.DefaultStreamingConfig
	cfg.LoadDistance = 1
	cfg.RenderDistance = 2
	cfg.MinChunkY = 0
	cfg.MaxChunkY = 0

	genCfg := config.DefaultWorldGenConfig(42069)
	generator := world.NewWorldGenerator(genCfg, cfg.Dims)

	chunkCache, err := cache.New(t.TempDir(), "test-world", cfg.Dims)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}

	pool := NewWorkerPool(generator, chunkCache, 256)
	t.Cleanup(pool.Shutdown)

	return NewController(pool, &render.LoggingRenderer{}, chunkCache, cfg)
}

// tickUntilQuiet ticks the controller at the given viewer position until a
// full round produces no new gen/mesh completions, or the deadline passes.
func tickUntilQuiet(t *testing.T, c *Controller, wx, wz int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		before := len(c.Store().All())
		c.Tick(wx, wz)
		time.Sleep(5 * time.Millisecond)
		c.Tick(wx, wz)
		after := len(c.Store().All())
		if after == before && after > 0 {
			return
		}
	}
}

// TestControllerLoadsChunksAroundViewer is scenario S4: ticking at a fixed
// viewer position eventually loads chunks around it, including the
// viewer's own chunk column.
func TestControllerLoadsChunksAroundViewer(t *testing.T) {
	c := newTestController(t)
	tickUntilQuiet(t, c, 0, 0)

	if len(c.Store().All()) == 0 {
		t.Fatal("expected at least one chunk to be loaded around the viewer")
	}
	if !c.Store().Has(world.ChunkCoord{X: 0, Y: 0, Z: 0}) {
		t.Error("expected the viewer's own chunk column to be loaded")
	}
}

// TestControllerEvictsFarChunks is scenario S5: moving the viewer far away
// evicts chunks that fall outside RenderDistance.
func TestControllerEvictsFarChunks(t *testing.T) {
	c := newTestController(t)
	tickUntilQuiet(t, c, 0, 0)
	if !c.Store().Has(world.ChunkCoord{X: 0, Y: 0, Z: 0}) {
		t.Fatal("setup: origin chunk should have loaded")
	}

	far := 1000 * config.DefaultChunkDims.Width
	tickUntilQuiet(t, c, far, far)

	if c.Store().Has(world.ChunkCoord{X: 0, Y: 0, Z: 0}) {
		t.Error("origin chunk should have been evicted once the viewer moved far away")
	}
}

// TestControllerMeshesLoadedChunks is scenario S6: a chunk within
// RenderDistance whose neighbors have loaded is eventually dispatched for
// meshing, which clears its dirty tag.
func TestControllerMeshesLoadedChunks(t *testing.T) {
	c := newTestController(t)
	tickUntilQuiet(t, c, 0, 0)

	e := c.Store().Get(world.ChunkCoord{X: 0, Y: 0, Z: 0})
	if e == nil {
		t.Fatal("expected origin chunk to be loaded")
	}
	if e.HasTag(world.TagDirty) {
		t.Error("a chunk within render distance should have been meshed and cleared of its dirty tag")
	}
}

// TestReconcileUsesLoadFromCacheInAnnulus is scenario S5: columns inside
// RenderDistance but outside LoadDistance are requested with
// ModeLoadFromCache, never ModeLoadOrGenerate, so an unpopulated annulus
// chunk never gets procedurally generated on the first pass.
func TestReconcileUsesLoadFromCacheInAnnulus(t *testing.T) {
	c := newTestController(t)
	// LoadDistance=1, RenderDistance=2: column (2,0) is in the annulus.
	c.reconcile(0, 0)

	far := world.ChunkCoord{X: 2, Y: 0, Z: 0}
	if c.store.Has(far) {
		t.Fatal("setup: annulus column should not be resident yet")
	}

	// Drain a moment for the cache-only request to come back as a miss.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		c.drainGenResults()
		if _, pending := c.pendingGen[far]; !pending {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if c.store.Has(far) {
		t.Error("a LoadFromCache miss in the annulus should never spawn a generated chunk")
	}
}

func TestSetBlockReDirtiesChunk(t *testing.T) {
	c := newTestController(t)
	tickUntilQuiet(t, c, 0, 0)

	e := c.Store().Get(world.ChunkCoord{X: 0, Y: 0, Z: 0})
	if e == nil {
		t.Fatal("expected origin chunk to be loaded")
	}

	c.SetBlock(1, 1, 1, world.BlockTypeStone)
	if !e.HasTag(world.TagDirty) {
		t.Error("editing a block should mark its chunk dirty again")
	}
}
