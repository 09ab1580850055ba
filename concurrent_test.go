package imaging_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/filter"
	"github.com/gogpu/imaging/matrix"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

// noise returns a deterministic pseudo-random Byte image.
func noise(t testing.TB, r image.Rectangle, bands int) *raster.Image {
	t.Helper()
	img, err := raster.New(r, bands, raster.Byte)
	if err != nil {
		t.Fatalf("raster.New() error = %v", err)
	}
	seed := uint32(2463534242)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			for b := range bands {
				seed ^= seed << 13
				seed ^= seed >> 17
				seed ^= seed << 5
				img.Set(x, y, b, float64(seed%256))
			}
		}
	}
	return img
}

func must[T any](t testing.TB) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return v
	}
}

func testOps(t *testing.T, src *raster.Image) map[string]imaging.Op {
	t.Helper()
	sharpen := must[*matrix.Matrix[float64]](t)(matrix.FromRows([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}))
	kernel := must[*matrix.Kernel[float64]](t)(matrix.NewKernel(sharpen))
	mask := must[*matrix.Mask](t)(matrix.FullMask(3, 5))
	gauss := must[*filter.SeparableConvolution](t)(filter.NewGaussianBlur(2))
	median := must[*filter.Rank](t)(filter.NewRank(filter.Median, mask))

	return map[string]imaging.Op{
		"copy": imaging.NullOp{},
		"convolution": must[*filter.Convolution](t)(filter.NewConvolution(kernel,
			filter.WithPadder(padder.Reflect{}), filter.WithAbs(true))),
		"gaussian":  gauss,
		"box float": must[*filter.SeparableConvolution](t)(filter.NewBoxBlur(3, filter.WithPrecision(raster.Float32))),
		"median":    median,
		"rescale":   must[*filter.Rescale](t)(filter.NewRescale(1.5, -20, 0, 255)),
		"twirl":     must[*filter.GeometricTransform](t)(filter.NewTwirl(0.4, 0.6, 2)),
		"resample":  must[*filter.GeometricTransform](t)(filter.NewResample(1.7, 0.6)),
		"blend":     must[*filter.Binary](t)(filter.NewBlend(src, 0.3)),
		"threshold": must[*filter.AutoThreshold](t)(filter.NewAutoThreshold(1, filter.OtsuThreshold)),
		"chain":     must[*imaging.Chain](t)(imaging.NewChain(gauss, median)),
	}
}

func TestConcurrentMatchesSingleThreaded(t *testing.T) {
	src := noise(t, image.Rect(3, -2, 40, 27), 3)
	pool := imaging.NewWorkerPool(4)
	t.Cleanup(pool.Close)

	configs := []struct {
		name string
		opts []imaging.ConcurrentOption
	}{
		{"1 worker", []imaging.ConcurrentOption{imaging.WithWorkers(1), imaging.WithTileSize(7, 5)}},
		{"2 workers", []imaging.ConcurrentOption{imaging.WithWorkers(2), imaging.WithTileSize(7, 5)}},
		{"4 workers", []imaging.ConcurrentOption{imaging.WithWorkers(4), imaging.WithTileSize(7, 5)}},
		{"8 workers", []imaging.ConcurrentOption{imaging.WithWorkers(8), imaging.WithTileSize(16, 3)}},
		{"default", nil},
		{"pool", []imaging.ConcurrentOption{imaging.WithPool(pool), imaging.WithTileSize(5, 7)}},
	}

	for name, op := range testOps(t, src) {
		want, err := op.Filter(src, nil)
		if err != nil {
			t.Fatalf("%s: Filter() error = %v", name, err)
		}
		for _, cfg := range configs {
			t.Run(fmt.Sprintf("%s/%s", name, cfg.name), func(t *testing.T) {
				c, err := imaging.NewConcurrent(op, cfg.opts...)
				if err != nil {
					t.Fatalf("NewConcurrent() error = %v", err)
				}
				got, err := c.Filter(src, nil)
				if err != nil {
					t.Fatalf("Filter() error = %v", err)
				}
				if got.Bounds() != want.Bounds() {
					t.Fatalf("Bounds() = %v, want %v", got.Bounds(), want.Bounds())
				}
				if !raster.Equal(got, want) {
					t.Errorf("tiled result differs from single-threaded result")
				}
			})
		}
	}
}

func TestConcurrentWindowSource(t *testing.T) {
	// Filtering a window must read the parent frame, tiled or not.
	parent := noise(t, image.Rect(0, 0, 30, 30), 1)
	win := parent.Window(image.Rect(8, 6, 21, 25))
	blur := must[*filter.SeparableConvolution](t)(filter.NewGaussianBlur(1.5))

	want := must[*raster.Image](t)(blur.Filter(win, nil))
	c := must[*imaging.Concurrent](t)(imaging.NewConcurrent(blur, imaging.WithTileSize(4, 4), imaging.WithWorkers(3)))
	got := must[*raster.Image](t)(c.Filter(win, nil))
	if !raster.Equal(got, want) {
		t.Error("tiled window result differs from single-threaded result")
	}
}

func TestConcurrentCancelled(t *testing.T) {
	src := noise(t, image.Rect(0, 0, 32, 32), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, op := range []imaging.Op{imaging.NullOp{}, must[*filter.SeparableConvolution](t)(filter.NewBoxBlur(1))} {
		c := must[*imaging.Concurrent](t)(imaging.NewConcurrent(op))
		_, err := c.FilterContext(ctx, src, nil)
		if !errors.Is(err, imaging.ErrInterrupted) || !errors.Is(err, context.Canceled) {
			t.Errorf("%T: FilterContext() error = %v, want ErrInterrupted wrapping context.Canceled", op, err)
		}
	}
}

// slowOp counts tiles and cancels the run after the first one.
type slowOp struct {
	imaging.NullOp
	tiles  atomic.Int32
	cancel context.CancelFunc
}

func (s *slowOp) Filter(src, dst *raster.Image) (*raster.Image, error) {
	if s.tiles.Add(1) == 1 {
		s.cancel()
	}
	return s.NullOp.Filter(src, dst)
}

func TestConcurrentCancelledMidRun(t *testing.T) {
	src := noise(t, image.Rect(0, 0, 64, 64), 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	op := &slowOp{cancel: cancel}

	c := must[*imaging.Concurrent](t)(imaging.NewConcurrent(op, imaging.WithWorkers(1), imaging.WithTileSize(8, 8)))
	_, err := c.FilterContext(ctx, src, nil)
	if !errors.Is(err, imaging.ErrInterrupted) {
		t.Fatalf("FilterContext() error = %v, want ErrInterrupted", err)
	}
	if n := op.tiles.Load(); n != 1 {
		t.Errorf("%d tiles filtered after cancellation, want 1", n)
	}
}

var errBadTile = errors.New("bad tile")

// failingOp fails on the tile containing a given pixel.
type failingOp struct {
	imaging.NullOp
	at image.Point
}

func (f failingOp) Filter(src, dst *raster.Image) (*raster.Image, error) {
	if dst != nil && f.at.In(dst.Bounds()) {
		return nil, errBadTile
	}
	return f.NullOp.Filter(src, dst)
}

func TestConcurrentPropagatesTileError(t *testing.T) {
	src := noise(t, image.Rect(0, 0, 40, 40), 1)
	pool := imaging.NewWorkerPool(3)
	t.Cleanup(pool.Close)

	for _, opts := range [][]imaging.ConcurrentOption{
		{imaging.WithWorkers(4)},
		{imaging.WithPool(pool)},
	} {
		c := must[*imaging.Concurrent](t)(imaging.NewConcurrent(failingOp{at: image.Pt(33, 12)},
			append(opts, imaging.WithTileSize(8, 8))...))
		if _, err := c.Filter(src, nil); !errors.Is(err, errBadTile) {
			t.Errorf("Filter() error = %v, want errBadTile", err)
		}
	}
}

func TestConcurrentClosedPool(t *testing.T) {
	pool := imaging.NewWorkerPool(2)
	pool.Close()
	if pool.IsRunning() {
		t.Fatal("IsRunning() = true after Close")
	}
	c := must[*imaging.Concurrent](t)(imaging.NewConcurrent(imaging.NullOp{}, imaging.WithPool(pool)))
	_, err := c.Filter(noise(t, image.Rect(0, 0, 8, 8), 1), nil)
	if !errors.Is(err, imaging.ErrPoolClosed) {
		t.Errorf("Filter() error = %v, want ErrPoolClosed", err)
	}
	if err := pool.Shutdown(time.Second); err != nil {
		t.Errorf("second Shutdown() error = %v, want nil", err)
	}
}

func BenchmarkConcurrentGaussian(b *testing.B) {
	src := noise(b, image.Rect(0, 0, 512, 512), 3)
	blur, err := filter.NewGaussianBlur(3)
	if err != nil {
		b.Fatal(err)
	}
	for _, workers := range []int{1, 4} {
		c, _ := imaging.NewConcurrent(blur, imaging.WithWorkers(workers))
		dst, _ := c.CreateDestination(src)
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Filter(src, dst); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
