// Command mini-mc is a headless demo of the chunk streaming pipeline: it
// wires a world generator, chunk cache, worker pool and streaming
// controller together and walks a synthetic viewer through the world,
// logging load/mesh/evict activity instead of drawing anything. It
// replaces the teacher's windowed game loop (go-gl/glfw + go-gl/gl),
// which has no role once GPU context creation is out of scope.
package main

import (
	"log"
	"time"

	"mini-mc/internal/cache"
	"mini-mc/internal/config"
	"mini-mc/internal/registry"
	"mini-mc/internal/render"
	"mini-mc/internal/streaming"
	"mini-mc/internal/world"
)

func main() {
	registry.InitRegistry()

	genCfg := config.DefaultWorldGenConfig(42069)
	streamCfg := config.DefaultStreamingConfig

	generator := world.NewWorldGenerator(genCfg, streamCfg.Dims)

	chunkCache, err := cache.New(".", "demo-world", streamCfg.Dims)
	if err != nil {
		log.Fatalf("mini-mc: open chunk cache: %v", err)
	}

	pool := streaming.NewWorkerPool(generator, chunkCache, 64)
	controller := streaming.NewController(pool, &render.LoggingRenderer{}, chunkCache, streamCfg)

	const frames = 120
	const stepBlocksPerFrame = 4

	for i := 0; i < frames; i++ {
		viewerX := i * stepBlocksPerFrame
		viewerZ := 0
		controller.Tick(viewerX, viewerZ)

		if i%30 == 0 {
			log.Printf("mini-mc: frame %d, viewer at (%d,%d), %d chunks loaded",
				i, viewerX, viewerZ, len(controller.Store().All()))
		}
		time.Sleep(time.Millisecond)
	}

	// Drain any mesh/gen work still in flight before shutting the pool down.
	for i := 0; i < 30; i++ {
		controller.Tick(frames*stepBlocksPerFrame, 0)
		time.Sleep(time.Millisecond)
	}

	controller.Shutdown()
	log.Printf("mini-mc: demo run complete")
}
