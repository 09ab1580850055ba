package parallel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/imaging/internal/errkind"
)

// TileFunc filters a single tile.
type TileFunc func(Tile) error

// Executor runs a TileFunc over every tile of a Tiler.
//
// Implementations stop handing out tiles once ctx is cancelled or a tile
// fails, and return the first failure.
type Executor interface {
	Execute(ctx context.Context, workers int, t Tiler, fn TileFunc) error
}

// Threads is an Executor that starts dedicated goroutines for each call and
// joins them before returning.
type Threads struct{}

// Execute implements Executor.
func (Threads) Execute(ctx context.Context, workers int, t Tiler, fn TileFunc) error {
	n := workerCount(workers, t)
	if n == 0 {
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	for range n {
		g.Go(func() error {
			return drain(gctx, t, fn)
		})
	}
	return g.Wait()
}

// drain pulls tiles until the tiler is exhausted, a tile fails or ctx is
// done. Cancellation is checked between tiles only.
func drain(ctx context.Context, t Tiler, fn TileFunc) error {
	for {
		if ctx.Err() != nil {
			return fmt.Errorf("parallel: %w: %w", errkind.ErrInterrupted, context.Cause(ctx))
		}
		tile, ok := t.Next()
		if !ok {
			return nil
		}
		if err := fn(tile); err != nil {
			return err
		}
	}
}

// workerCount bounds the requested workers by the number of tiles.
func workerCount(workers int, t Tiler) int {
	if workers <= 0 {
		workers = 1
	}
	return min(workers, t.Len())
}
