package streaming

import "mini-mc/internal/config"

// Config re-exports the chunk-streaming tunables from internal/config so
// callers only need to import one package for a controller's knobs.
type Config = config.StreamingConfig

// Default is the ring sizing used when nothing more specific is supplied.
var Default = config.DefaultStreamingConfig
