package scan

import "runtime"

// DefaultMinChunk is the smallest per-agent chunk worth the goroutine
// overhead. Inputs shorter than this run on the calling goroutine.
const DefaultMinChunk = 1024

// Options bounds the parallelism of a materialization pass.
type Options struct {
	// MaxParallel caps concurrent agents (0 = GOMAXPROCS).
	MaxParallel int
	// MinChunk is the minimum elements per agent chunk (0 = DefaultMinChunk).
	MinChunk int
}

func (o Options) normalized() Options {
	if o.MaxParallel <= 0 {
		o.MaxParallel = runtime.GOMAXPROCS(0)
	}
	if o.MinChunk <= 0 {
		o.MinChunk = DefaultMinChunk
	}
	return o
}

// chunkSize picks a chunk length that keeps every agent busy without
// dropping below the minimum worthwhile chunk.
func (o Options) chunkSize(n int) int {
	size := (n + o.MaxParallel - 1) / o.MaxParallel
	if size < o.MinChunk {
		size = o.MinChunk
	}
	return size
}
