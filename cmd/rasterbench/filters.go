package main

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/filter"
	"github.com/gogpu/imaging/interp"
	"github.com/gogpu/imaging/matrix"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

type builder func(cfg config, src *raster.Image, opts []filter.Option) (imaging.Op, error)

var builders = map[string]builder{
	"gaussian": func(cfg config, _ *raster.Image, opts []filter.Option) (imaging.Op, error) {
		return filter.NewGaussianBlur(cfg.radius, opts...)
	},
	"box": func(cfg config, _ *raster.Image, opts []filter.Option) (imaging.Op, error) {
		return filter.NewBoxBlur(int(math.Round(cfg.radius)), opts...)
	},
	"sobel": func(_ config, _ *raster.Image, opts []filter.Option) (imaging.Op, error) {
		m, err := matrix.FromRows([][]float64{
			{-1, 0, 1},
			{-2, 0, 2},
			{-1, 0, 1},
		})
		if err != nil {
			return nil, err
		}
		k, err := matrix.NewKernel(m)
		if err != nil {
			return nil, err
		}
		return filter.NewConvolution(k, append(opts, filter.WithAbs(true), filter.WithRescale(1, 0, 0, 255))...)
	},
	"median": func(cfg config, _ *raster.Image, opts []filter.Option) (imaging.Op, error) {
		n := 2*int(math.Round(cfg.radius)) + 1
		mask, err := matrix.FullMask(n, n)
		if err != nil {
			return nil, err
		}
		return filter.NewRank(filter.Median, mask, opts...)
	},
	"twirl": func(cfg config, _ *raster.Image, opts []filter.Option) (imaging.Op, error) {
		return filter.NewTwirl(0.5, 0.5, cfg.radius, opts...)
	},
	"resample": func(cfg config, _ *raster.Image, opts []filter.Option) (imaging.Op, error) {
		return filter.NewResample(cfg.scale, cfg.scale, append(opts,
			filter.WithInterpolant(interp.Bicubic{}), filter.WithClamp(0, 255))...)
	},
	"otsu": func(_ config, _ *raster.Image, _ []filter.Option) (imaging.Op, error) {
		return filter.NewAutoThreshold(0, filter.OtsuThreshold)
	},
	"edges": func(cfg config, src *raster.Image, opts []filter.Option) (imaging.Op, error) {
		blur, err := filter.NewGaussianBlur(cfg.radius, opts...)
		if err != nil {
			return nil, err
		}
		diff, err := filter.NewDifference(src)
		if err != nil {
			return nil, err
		}
		return imaging.NewChain(blur, diff)
	},
}

func filterNames() string {
	names := lo.Keys(builders)
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// buildOp returns the operation selected by cfg.filter.
func buildOp(cfg config, src *raster.Image) (imaging.Op, error) {
	build, ok := builders[cfg.filter]
	if !ok {
		return nil, fmt.Errorf("unknown filter %q (want one of %s)", cfg.filter, filterNames())
	}
	var opts []filter.Option
	if cfg.padder != "" {
		t, err := padder.ParseType(cfg.padder)
		if err != nil {
			return nil, err
		}
		p, err := padder.New(t)
		if err != nil {
			return nil, err
		}
		opts = append(opts, filter.WithPadder(p))
	}
	return build(cfg, src, opts)
}
