package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/imaging/internal/errkind"
)

var (
	// ErrPoolClosed is returned when work is submitted to a pool that has
	// been shut down.
	ErrPoolClosed = errors.New("parallel: worker pool is closed")

	// ErrShutdownTimeout is returned by Shutdown when running work did not
	// finish within the grace period.
	ErrShutdownTimeout = errors.New("parallel: shutdown timed out")
)

// WorkerPool is a pool of goroutines shared by concurrent filter runs.
//
// The pool distributes work items across multiple workers, each with their own
// queue. Workers can steal work from other workers when their own queue is empty.
// This helps balance load when some tiles are slower than others.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// abandoned is set when Shutdown gave up waiting. Queued work that starts
	// afterwards reports ErrInterrupted instead of running.
	abandoned atomic.Bool

	// mu orders Submit against closing done.
	mu sync.RWMutex

	// next is the round-robin submission cursor.
	next atomic.Uint64
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	Logger().Debug("parallel: worker pool started", "workers", workers, "queue", queueSize)
	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				work()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Submit queues a single work item. It returns ErrPoolClosed once Shutdown
// has begun; accepted work always runs.
func (p *WorkerPool) Submit(fn func()) error {
	if fn == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return ErrPoolClosed
	}

	id := int(p.next.Add(1) % uint64(p.workers))
	select {
	case p.workQueues[id] <- fn:
		return nil
	case <-p.done:
		return ErrPoolClosed
	}
}

// Run executes n copies of task on the pool and waits for all of them.
//
// The context passed to task is cancelled as soon as one copy fails or ctx is
// cancelled; the first failure is returned.
func (p *WorkerPool) Run(ctx context.Context, n int, task func(ctx context.Context) error) error {
	if n <= 0 {
		return nil
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var (
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)
	fail := func(err error) {
		once.Do(func() {
			first = err
			cancel(err)
		})
	}

	for range n {
		wg.Add(1)
		err := p.Submit(func() {
			defer wg.Done()
			if p.abandoned.Load() {
				fail(fmt.Errorf("parallel: %w: pool shut down", errkind.ErrInterrupted))
				return
			}
			if err := task(ctx); err != nil {
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}

	wg.Wait()
	return first
}

// Execute implements Executor.
func (p *WorkerPool) Execute(ctx context.Context, workers int, t Tiler, fn TileFunc) error {
	n := min(workerCount(workers, t), p.workers)
	if n == 0 {
		return ctx.Err()
	}
	return p.Run(ctx, n, func(ctx context.Context) error {
		return drain(ctx, t, fn)
	})
}

// Shutdown stops accepting work and waits up to grace for queued and running
// work to finish. A non-positive grace waits indefinitely. On timeout, queued
// work that has not started is abandoned and reports ErrInterrupted to its
// caller. Shutdown is safe to call multiple times.
func (p *WorkerPool) Shutdown(grace time.Duration) error {
	if !p.running.CompareAndSwap(true, false) {
		return nil
	}

	p.mu.Lock()
	close(p.done)
	p.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(stopped)
	}()

	if grace <= 0 {
		<-stopped
		return nil
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-stopped:
		return nil
	case <-timer.C:
		p.abandoned.Store(true)
		Logger().Warn("parallel: shutdown grace period expired",
			"grace", grace, "queued", p.QueuedWork())
		return ErrShutdownTimeout
	}
}

// Close shuts the pool down and waits for all queued work.
func (p *WorkerPool) Close() {
	_ = p.Shutdown(0)
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the total number of work items currently queued.
// This is an approximation as queues can change while iterating.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, q := range p.workQueues {
		total += len(q)
	}
	return total
}
