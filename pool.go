package imaging

import (
	"time"

	"github.com/gogpu/imaging/internal/parallel"
)

// WorkerPool is a set of persistent worker goroutines that Concurrent runs
// can share through WithPool.
//
// Thread safety: WorkerPool is safe for concurrent use. Several filter runs
// may share one pool.
type WorkerPool struct {
	p *parallel.WorkerPool
}

// NewWorkerPool starts a pool with n workers. If n is 0 or negative,
// GOMAXPROCS is used.
func NewWorkerPool(n int) *WorkerPool {
	return &WorkerPool{p: parallel.NewWorkerPool(n)}
}

// Workers returns the number of workers in the pool.
func (w *WorkerPool) Workers() int { return w.p.Workers() }

// IsRunning reports whether the pool still accepts work.
func (w *WorkerPool) IsRunning() bool { return w.p.IsRunning() }

// Shutdown stops accepting work and waits up to grace for queued tiles.
// When the grace period expires, tiles that have not started are abandoned:
// the runs they belong to fail with ErrInterrupted, and Shutdown returns
// ErrShutdownTimeout. A non-positive grace waits indefinitely.
func (w *WorkerPool) Shutdown(grace time.Duration) error {
	return w.p.Shutdown(grace)
}

// Close shuts the pool down after all queued work completes.
// Close is safe to call multiple times.
func (w *WorkerPool) Close() { w.p.Close() }
