package parallel

import (
	"context"
	"errors"
	"image"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/imaging/internal/errkind"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

// =============================================================================
// Run Tests
// =============================================================================

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	err := pool.Run(context.Background(), 16, func(context.Context) error {
		counter.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if counter.Load() != 16 {
		t.Errorf("counter = %d, want 16", counter.Load())
	}
}

func TestWorkerPool_RunFirstError(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	boom := errors.New("boom")
	err := pool.Run(context.Background(), 4, func(context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestWorkerPool_RunAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	err := pool.Run(context.Background(), 1, func(context.Context) error { return nil })
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Run() after Close error = %v, want ErrPoolClosed", err)
	}
	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Submit() after Close error = %v, want ErrPoolClosed", err)
	}
}

// =============================================================================
// Shutdown Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
	if pool.IsRunning() {
		t.Error("Pool should not be running after Close")
	}
}

func TestWorkerPool_CloseRunsPendingWork(t *testing.T) {
	pool := NewWorkerPool(2)

	var counter atomic.Int64
	for range 10 {
		if err := pool.Submit(func() { counter.Add(1) }); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	pool.Close()

	if counter.Load() != 10 {
		t.Errorf("counter = %d, want 10", counter.Load())
	}
}

func TestWorkerPool_ShutdownTimeout(t *testing.T) {
	pool := NewWorkerPool(1)

	release := make(chan struct{})
	started := make(chan struct{})
	if err := pool.Submit(func() {
		close(started)
		<-release
	}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	<-started

	var ran atomic.Bool
	runErr := make(chan error, 1)
	go func() {
		runErr <- pool.Run(context.Background(), 1, func(context.Context) error {
			ran.Store(true)
			return nil
		})
	}()
	// Wait until the Run task is queued behind the blocker.
	for pool.QueuedWork() == 0 {
		runtime.Gosched()
	}

	if err := pool.Shutdown(10 * time.Millisecond); !errors.Is(err, ErrShutdownTimeout) {
		t.Errorf("Shutdown() error = %v, want ErrShutdownTimeout", err)
	}
	close(release)

	if err := <-runErr; !errors.Is(err, errkind.ErrInterrupted) {
		t.Errorf("abandoned Run() error = %v, want ErrInterrupted", err)
	}
	if ran.Load() {
		t.Error("abandoned task should not run")
	}
}

// =============================================================================
// Executor Tests
// =============================================================================

func executors(t *testing.T) map[string]Executor {
	t.Helper()
	pool := NewWorkerPool(4)
	t.Cleanup(pool.Close)
	return map[string]Executor{
		"threads": Threads{},
		"pool":    pool,
	}
}

func TestExecutor_VisitsEveryTileOnce(t *testing.T) {
	for name, ex := range executors(t) {
		t.Run(name, func(t *testing.T) {
			bounds := image.Rect(0, 0, 100, 70)
			tiler, err := NewSimpleTiler(bounds, 16, 16)
			if err != nil {
				t.Fatal(err)
			}
			hits := make([]atomic.Int32, tiler.Len())
			var area atomic.Int64
			err = ex.Execute(context.Background(), 4, tiler, func(tile Tile) error {
				hits[tile.Index].Add(1)
				area.Add(int64(tile.Rect.Dx() * tile.Rect.Dy()))
				return nil
			})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for i := range hits {
				if hits[i].Load() != 1 {
					t.Errorf("tile %d visited %d times", i, hits[i].Load())
				}
			}
			if area.Load() != 100*70 {
				t.Errorf("covered area = %d, want %d", area.Load(), 100*70)
			}
		})
	}
}

func TestExecutor_Cancelled(t *testing.T) {
	for name, ex := range executors(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			tiler, _ := NewSimpleTiler(image.Rect(0, 0, 64, 64), 8, 8)

			var visited atomic.Int32
			err := ex.Execute(ctx, 2, tiler, func(Tile) error {
				visited.Add(1)
				return nil
			})
			if !errors.Is(err, errkind.ErrInterrupted) {
				t.Errorf("Execute() error = %v, want ErrInterrupted", err)
			}
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Execute() error = %v, want to wrap context.Canceled", err)
			}
			if visited.Load() != 0 {
				t.Errorf("visited %d tiles after cancellation", visited.Load())
			}
		})
	}
}

func TestExecutor_TileError(t *testing.T) {
	for name, ex := range executors(t) {
		t.Run(name, func(t *testing.T) {
			boom := errors.New("boom")
			tiler, _ := NewSimpleTiler(image.Rect(0, 0, 64, 64), 8, 8)
			err := ex.Execute(context.Background(), 3, tiler, func(tile Tile) error {
				if tile.Index == 5 {
					return boom
				}
				return nil
			})
			if !errors.Is(err, boom) {
				t.Errorf("Execute() error = %v, want %v", err, boom)
			}
		})
	}
}

func TestExecutor_EmptyTiler(t *testing.T) {
	for name, ex := range executors(t) {
		t.Run(name, func(t *testing.T) {
			tiler, _ := NewSimpleTiler(image.Rectangle{}, 8, 8)
			err := ex.Execute(context.Background(), 4, tiler, func(Tile) error {
				t.Error("no tile expected")
				return nil
			})
			if err != nil {
				t.Errorf("Execute() error = %v", err)
			}
		})
	}
}
