package imaging

import (
	"context"
	"fmt"

	"github.com/gogpu/imaging/internal/parallel"
	"github.com/gogpu/imaging/raster"
)

// Concurrent runs an Op tile by tile on several workers.
//
// The op's Tiling is read once at construction and selects the tiler:
// Simple and Padded ops get source windows matching (or surrounding) each
// destination tile, Mapped ops read the whole source, Staged ops run their
// stages one after another and None ops are called once.
//
// The result is sample-identical to op.Filter on the whole image.
type Concurrent struct {
	op     Op
	tiling Tiling
	opts   concurrentOptions
}

// NewConcurrent wraps op for tiled execution.
func NewConcurrent(op Op, opts ...ConcurrentOption) (*Concurrent, error) {
	if op == nil {
		return nil, fmt.Errorf("imaging: nil op: %w", ErrInvalidParameter)
	}
	o := defaultConcurrentOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.tileWidth <= 0 || o.tileHeight <= 0 {
		return nil, fmt.Errorf("imaging: tile size %dx%d: %w", o.tileWidth, o.tileHeight, ErrInvalidParameter)
	}
	return &Concurrent{op: op, tiling: op.Tiling(), opts: o}, nil
}

// Op returns the wrapped operation.
func (c *Concurrent) Op() Op { return c.op }

// Tiling implements Op.
func (c *Concurrent) Tiling() Tiling { return c.tiling }

// CreateDestination implements Op.
func (c *Concurrent) CreateDestination(src *raster.Image) (*raster.Image, error) {
	return c.op.CreateDestination(src)
}

// Filter implements Op. It is FilterContext with a background context.
func (c *Concurrent) Filter(src, dst *raster.Image) (*raster.Image, error) {
	return c.FilterContext(context.Background(), src, dst)
}

// FilterContext filters src into dst. Cancellation is observed between
// tiles and reported as an error matching ErrInterrupted; tiles already
// written stay written, no tile is partially written.
func (c *Concurrent) FilterContext(ctx context.Context, src, dst *raster.Image) (*raster.Image, error) {
	dst, err := EnsureDestination(c.op, src, dst)
	if err != nil {
		return nil, err
	}
	if err := run(ctx, c.op, c.tiling, c.opts, src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func run(ctx context.Context, op Op, t Tiling, o concurrentOptions, src, dst *raster.Image) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("imaging: %w: %w", ErrInterrupted, context.Cause(ctx))
	}

	var (
		tiler *parallel.GridTiler
		err   error
	)
	bounds := dst.Bounds()

	switch t.Strategy {
	case None:
		Logger().Debug("imaging: single call", "op", fmt.Sprintf("%T", op))
		_, err = op.Filter(src, dst)
		return err
	case Staged:
		return runStages(ctx, t.Stages, o, src, dst)
	case Simple:
		tiler, err = parallel.NewSimpleTiler(bounds, o.tileWidth, o.tileHeight)
	case Padded:
		tiler, err = parallel.NewPaddedTiler(bounds, src.Bounds(), o.tileWidth, o.tileHeight, t.Halo)
	case Mapped:
		tiler, err = parallel.NewMappedTiler(bounds, src.Bounds(), o.tileWidth, o.tileHeight)
	default:
		return fmt.Errorf("imaging: unknown tiling strategy %v: %w", t.Strategy, ErrInvalidParameter)
	}
	if err != nil {
		return err
	}

	var exec parallel.Executor = parallel.Threads{}
	if o.pool != nil {
		exec = o.pool.p
	}

	Logger().Debug("imaging: tiled run",
		"op", fmt.Sprintf("%T", op),
		"strategy", t.Strategy,
		"tiles", tiler.Len(),
		"workers", o.workers,
		"pool", o.pool != nil)

	return exec.Execute(ctx, o.workers, tiler, func(tile parallel.Tile) error {
		in := src
		if t.Strategy != Mapped {
			in = src.Window(tile.Read)
		}
		_, err := op.Filter(in, dst.Window(tile.Rect))
		return err
	})
}

// runStages runs every stage over the whole image. Intermediates come from
// each stage's CreateDestination; the last stage writes dst.
func runStages(ctx context.Context, stages []Op, o concurrentOptions, src, dst *raster.Image) error {
	if len(stages) == 0 {
		return fmt.Errorf("imaging: staged op without stages: %w", ErrInvalidParameter)
	}
	cur := src
	for i, stage := range stages {
		out := dst
		if i < len(stages)-1 {
			var err error
			if out, err = stage.CreateDestination(cur); err != nil {
				return err
			}
		}
		Logger().Debug("imaging: stage", "index", i, "op", fmt.Sprintf("%T", stage))
		if err := run(ctx, stage, stage.Tiling(), o, cur, out); err != nil {
			return fmt.Errorf("imaging: stage %d: %w", i, err)
		}
		cur = out
	}
	return nil
}
