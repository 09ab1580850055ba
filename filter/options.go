package filter

import (
	"math"

	"github.com/gogpu/imaging/interp"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

// Option configures a filter during construction. Options a filter does not
// use are ignored.
//
// Example:
//
//	edges, _ := filter.NewConvolution(sobel,
//	    filter.WithPadder(padder.Reflect{}),
//	    filter.WithAbs(true),
//	    filter.WithPrecision(raster.Float32))
type Option func(*options)

type options struct {
	padder    padder.Padder
	interp    interp.Interpolant
	precision raster.Precision
	hasPrec   bool
	abs       []bool
	gain      []float64
	bias      []float64
	min       []float64
	max       []float64
	clamp     bool
	clampMin  float64
	clampMax  float64
}

// defaultOptions returns the options shared by every filter: no padder and
// interpolant chosen yet, identity post-processing, unbounded clamp.
func defaultOptions() options {
	return options{
		abs:  []bool{false},
		gain: []float64{1},
		bias: []float64{0},
		min:  []float64{math.Inf(-1)},
		max:  []float64{math.Inf(1)},
	}
}

func applyOptions(opts []Option, base options) options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// WithPadder sets the padder used for reads outside the source frame.
func WithPadder(p padder.Padder) Option {
	return func(o *options) {
		o.padder = p
	}
}

// WithInterpolant sets the interpolant of geometric transforms.
func WithInterpolant(i interp.Interpolant) Option {
	return func(o *options) {
		o.interp = i
	}
}

// WithPrecision sets the destination precision.
func WithPrecision(p raster.Precision) Option {
	return func(o *options) {
		o.precision = p
		o.hasPrec = true
	}
}

// WithAbs takes the absolute value of the raw result before rescaling.
// A single value applies to every band; otherwise each band uses its entry,
// and bands beyond the slice reuse the last one.
func WithAbs(abs ...bool) Option {
	return func(o *options) {
		if len(abs) > 0 {
			o.abs = abs
		}
	}
}

// WithRescale maps every raw result v to clamp(gain*v+bias, min, max).
func WithRescale(gain, bias, min, max float64) Option {
	return WithBandRescale([]float64{gain}, []float64{bias}, []float64{min}, []float64{max})
}

// WithBandRescale is WithRescale with per-band parameters. Bands beyond a
// slice reuse its last entry; empty slices keep the defaults.
func WithBandRescale(gain, bias, min, max []float64) Option {
	return func(o *options) {
		if len(gain) > 0 {
			o.gain = gain
		}
		if len(bias) > 0 {
			o.bias = bias
		}
		if len(min) > 0 {
			o.min = min
		}
		if len(max) > 0 {
			o.max = max
		}
	}
}

// WithClamp clamps interpolated samples of geometric transforms to
// [min, max].
func WithClamp(min, max float64) Option {
	return func(o *options) {
		o.clamp = true
		o.clampMin = min
		o.clampMax = max
	}
}
