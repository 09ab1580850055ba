// Command rasterbench filters a synthetic raster once on the calling
// goroutine and then tiled on several workers, reports both timings and
// checks that the results are identical.
//
// Usage:
//
//	rasterbench --filter gaussian --radius 3 --size 2048x2048
//	rasterbench --filter median --padder reflect --workers 4 --tile 128x128
//	rasterbench --filter resample --scale 0.5 --output small.png
//
// With --filter resample the result is also compared against the Catmull-Rom
// scaler of golang.org/x/image/draw.
package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

type config struct {
	filter  string
	size    string
	bands   int
	padder  string
	radius  float64
	scale   float64
	workers int
	tile    string
	pool    bool
	runs    int
	output  string
	verbose bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config{}
	cmd := &cobra.Command{
		Use:          "rasterbench",
		Short:        "Compare single-threaded and tiled raster filtering",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, cmd, cfg)
		},
	}

	addFlags(cmd.Flags(), &cfg)
	return cmd
}

func addFlags(f *pflag.FlagSet, cfg *config) {
	f.StringVarP(&cfg.filter, "filter", "f", "gaussian", "filter to run: "+filterNames())
	f.StringVar(&cfg.size, "size", "1024x1024", "raster size as WIDTHxHEIGHT")
	f.IntVar(&cfg.bands, "bands", 3, "number of bands (1, 3 or 4)")
	f.StringVar(&cfg.padder, "padder", "", "edge padding: zero, extend, reflect or wrap (filter default if empty)")
	f.Float64VarP(&cfg.radius, "radius", "r", 2, "blur radius or rank neighborhood radius")
	f.Float64Var(&cfg.scale, "scale", 0.5, "resample factor")
	f.IntVarP(&cfg.workers, "workers", "w", 0, "number of workers (0 = GOMAXPROCS)")
	f.StringVar(&cfg.tile, "tile", "64x64", "tile size as WIDTHxHEIGHT")
	f.BoolVar(&cfg.pool, "pool", false, "run tiles on a shared worker pool")
	f.IntVarP(&cfg.runs, "runs", "n", 3, "timed runs per mode")
	f.StringVarP(&cfg.output, "output", "o", "", "write the tiled result as PNG")
	f.BoolVarP(&cfg.verbose, "verbose", "v", false, "log dispatch decisions")
}

func run(ctx context.Context, cmd *cobra.Command, cfg config) error {
	if cfg.verbose {
		imaging.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if cfg.runs <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", cfg.runs)
	}

	w, h, err := parseSize(cfg.size)
	if err != nil {
		return fmt.Errorf("--size: %w", err)
	}
	tw, th, err := parseSize(cfg.tile)
	if err != nil {
		return fmt.Errorf("--tile: %w", err)
	}

	src, err := synthetic(w, h, cfg.bands)
	if err != nil {
		return err
	}
	op, err := buildOp(cfg, src)
	if err != nil {
		return err
	}

	opts := []imaging.ConcurrentOption{imaging.WithWorkers(cfg.workers), imaging.WithTileSize(tw, th)}
	if cfg.pool {
		pool := imaging.NewWorkerPool(cfg.workers)
		defer pool.Close()
		opts = append(opts, imaging.WithPool(pool))
	}
	tiled, err := imaging.NewConcurrent(op, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s on %dx%dx%d, tiles %dx%d, strategy %v\n",
		cfg.filter, w, h, cfg.bands, tw, th, op.Tiling().Strategy)

	want, single, err := timeRuns(cfg.runs, func() (*raster.Image, error) { return op.Filter(src, nil) })
	if err != nil {
		return fmt.Errorf("single-threaded: %w", err)
	}
	got, concurrent, err := timeRuns(cfg.runs, func() (*raster.Image, error) { return tiled.FilterContext(ctx, src, nil) })
	if err != nil {
		return fmt.Errorf("tiled: %w", err)
	}

	fmt.Fprintf(out, "  single:   %v\n", single)
	fmt.Fprintf(out, "  tiled:    %v (x%.2f)\n", concurrent, float64(single)/float64(max(concurrent, 1)))
	if !raster.Equal(want, got) {
		return fmt.Errorf("tiled result differs from single-threaded result")
	}
	fmt.Fprintln(out, "  results identical")

	if cfg.filter == "resample" {
		if err := compareWithXDraw(out, src, got); err != nil {
			return err
		}
	}
	if cfg.output != "" {
		if err := writePNG(cfg.output, got); err != nil {
			return err
		}
		fmt.Fprintf(out, "  wrote %s\n", cfg.output)
	}
	return nil
}

// timeRuns returns the last result and the fastest of n runs.
func timeRuns(n int, fn func() (*raster.Image, error)) (*raster.Image, time.Duration, error) {
	var (
		last *raster.Image
		best = time.Duration(math.MaxInt64)
	)
	for range n {
		start := time.Now()
		img, err := fn()
		if err != nil {
			return nil, 0, err
		}
		best = min(best, time.Since(start))
		last = img
	}
	return last, best, nil
}

func parseSize(s string) (w, h int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("%q is not WIDTHxHEIGHT", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%q must be positive", s)
	}
	return w, h, nil
}

// synthetic renders diagonal bands plus a checkerboard so both smooth and
// sharp structure show up in the output.
func synthetic(w, h, bands int) (*raster.Image, error) {
	img, err := raster.NewSize(w, h, bands, raster.Byte)
	if err != nil {
		return nil, err
	}
	for y := range h {
		for x := range w {
			check := 0.0
			if (x/16+y/16)%2 == 0 {
				check = 60
			}
			for b := range bands {
				phase := float64(b) * math.Pi / 3
				v := 127 + 60*math.Sin(float64(x+y)/23+phase) + check
				img.Set(x, y, b, v)
			}
		}
	}
	return img, nil
}

// compareWithXDraw prints the largest deviation from x/image's Catmull-Rom
// scaler, which uses a different kernel support at the edges.
func compareWithXDraw(out io.Writer, src, got *raster.Image) error {
	in, err := src.ToImage()
	if err != nil {
		return err
	}
	ref := image.NewNRGBA(got.Bounds())
	xdraw.CatmullRom.Scale(ref, ref.Bounds(), in, in.Bounds(), xdraw.Src, nil)
	refRaster, err := raster.FromImage(ref)
	if err != nil {
		return err
	}

	var worst float64
	r := got.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			for b := range min(got.Bands(), refRaster.Bands()) {
				worst = max(worst, math.Abs(got.At(x, y, b)-refRaster.At(x, y, b)))
			}
		}
	}
	fmt.Fprintf(out, "  x/image CatmullRom max deviation: %.0f\n", worst)
	return nil
}

func writePNG(path string, img *raster.Image) error {
	m, err := img.ToImage()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
