package filter

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

// bandParam returns the entry of vals for band b, reusing the last entry for
// bands beyond the slice. vals must not be empty.
func bandParam[T any](vals []T, b int) T {
	var zero T
	return lo.NthOr(vals, min(b, len(vals)-1), zero)
}

// post is the per-band post-processing step: optional absolute value, then
// clamp(gain*v+bias, min, max).
type post struct {
	abs      []bool
	gain     []float64
	bias     []float64
	min      []float64
	max      []float64
	identity bool
}

func newPost(o options) (post, error) {
	if lo.SomeBy(o.gain, notFinite) || lo.SomeBy(o.bias, notFinite) {
		return post{}, fmt.Errorf("filter: gain %v, bias %v: %w", o.gain, o.bias, imaging.ErrInvalidParameter)
	}
	if lo.SomeBy(o.min, math.IsNaN) || lo.SomeBy(o.max, math.IsNaN) {
		return post{}, fmt.Errorf("filter: NaN clamp bound: %w", imaging.ErrInvalidParameter)
	}
	for b := range max(len(o.min), len(o.max)) {
		if bandParam(o.min, b) > bandParam(o.max, b) {
			return post{}, fmt.Errorf("filter: band %d: min %v > max %v: %w",
				b, bandParam(o.min, b), bandParam(o.max, b), imaging.ErrInvalidParameter)
		}
	}
	p := post{abs: o.abs, gain: o.gain, bias: o.bias, min: o.min, max: o.max}
	p.identity = !lo.Contains(o.abs, true) &&
		lo.EveryBy(o.gain, func(g float64) bool { return g == 1 }) &&
		lo.EveryBy(o.bias, func(b float64) bool { return b == 0 }) &&
		lo.EveryBy(o.min, func(v float64) bool { return math.IsInf(v, -1) }) &&
		lo.EveryBy(o.max, func(v float64) bool { return math.IsInf(v, 1) })
	return p, nil
}

func (p post) apply(b int, v float64) float64 {
	if p.identity {
		return v
	}
	if bandParam(p.abs, b) {
		v = math.Abs(v)
	}
	return lo.Clamp(bandParam(p.gain, b)*v+bandParam(p.bias, b), bandParam(p.min, b), bandParam(p.max, b))
}

func notFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// destinationPrecision returns the configured precision, or fallback.
func destinationPrecision(o options, fallback raster.Precision) (raster.Precision, error) {
	if !o.hasPrec {
		return fallback, nil
	}
	if !o.precision.IsValid() {
		return 0, fmt.Errorf("filter: precision %d: %w", o.precision, imaging.ErrUnsupportedPrecision)
	}
	return o.precision, nil
}

// checkBands fails with ErrDimensionMismatch when dst has fewer than need
// bands.
func checkBands(dst *raster.Image, need int) error {
	if dst.Bands() < need {
		return fmt.Errorf("filter: destination has %d bands, need %d: %w",
			dst.Bands(), need, imaging.ErrDimensionMismatch)
	}
	return nil
}
