package imaging

import (
	"runtime"

	"github.com/gogpu/imaging/internal/parallel"
)

// ConcurrentOption configures a Concurrent wrapper during creation.
//
// Example:
//
//	// Default: GOMAXPROCS dedicated goroutines, 64x64 tiles
//	c, _ := imaging.NewConcurrent(op)
//
//	// Shared pool, larger tiles
//	pool := imaging.NewWorkerPool(8)
//	defer pool.Close()
//	c, _ = imaging.NewConcurrent(op, imaging.WithPool(pool), imaging.WithTileSize(128, 128))
type ConcurrentOption func(*concurrentOptions)

// concurrentOptions holds optional configuration for Concurrent.
type concurrentOptions struct {
	tileWidth  int
	tileHeight int
	workers    int
	pool       *WorkerPool
}

// defaultConcurrentOptions returns the default options.
func defaultConcurrentOptions() concurrentOptions {
	return concurrentOptions{
		tileWidth:  parallel.TileWidth,
		tileHeight: parallel.TileHeight,
		workers:    runtime.GOMAXPROCS(0),
	}
}

// WithTileSize sets the tile size in pixels. Both sizes must be positive.
func WithTileSize(width, height int) ConcurrentOption {
	return func(o *concurrentOptions) {
		o.tileWidth = width
		o.tileHeight = height
	}
}

// WithWorkers sets the number of workers. Zero or negative values select
// GOMAXPROCS.
func WithWorkers(n int) ConcurrentOption {
	return func(o *concurrentOptions) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithPool runs tiles on a shared worker pool instead of dedicated
// goroutines. At most pool.Workers() tasks run per call.
func WithPool(p *WorkerPool) ConcurrentOption {
	return func(o *concurrentOptions) {
		o.pool = p
	}
}
