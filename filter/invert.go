package filter

import (
	"fmt"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

// Invert mirrors samples within a range: s' = min + max - s. Without an
// explicit range the precision range of the source is used (255 - s for
// Byte, 1 - s for Bit); float sources need an explicit range.
type Invert struct {
	imaging.NullOp

	offset []float64
}

// NewInvert returns an inversion over the precision range of the source.
func NewInvert() *Invert {
	return &Invert{}
}

// NewRangeInvert returns an inversion over per-band ranges [min[b], max[b]].
// Bands beyond the slices reuse the last entry.
func NewRangeInvert(min, max []float64) (*Invert, error) {
	if len(min) == 0 || len(min) != len(max) {
		return nil, fmt.Errorf("filter: invert range %v..%v: %w", min, max, imaging.ErrInvalidParameter)
	}
	offset := make([]float64, len(min))
	for i := range min {
		if notFinite(min[i]) || notFinite(max[i]) || min[i] > max[i] {
			return nil, fmt.Errorf("filter: invert range [%v, %v]: %w", min[i], max[i], imaging.ErrInvalidParameter)
		}
		offset[i] = min[i] + max[i]
	}
	return &Invert{offset: offset}, nil
}

// Filter implements imaging.Op.
func (v *Invert) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(v, src, dst)
	if err != nil {
		return nil, err
	}
	offset := v.offset
	if offset == nil {
		if src.Precision().IsFloat() {
			return nil, fmt.Errorf("filter: invert %v without range: %w", src.Precision(), imaging.ErrUnsupportedPrecision)
		}
		low, high := src.Precision().Range()
		offset = []float64{low + high}
	}

	bands := min(src.Bands(), dst.Bands())
	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			for b := range bands {
				dst.Set(x, y, b, bandParam(offset, b)-src.At(x, y, b))
			}
		}
	}
	return dst, nil
}
