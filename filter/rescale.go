package filter

import (
	"fmt"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

// Rescale maps every sample s to clamp(gain*abs?(s)+bias, min, max) and
// stores it at the destination precision. Per-band parameters reuse their
// last entry for further bands; the band count is kept for every precision,
// Bit included.
type Rescale struct {
	post post
	opts options
}

// NewRescale returns a rescale with the same parameters for every band.
func NewRescale(gain, bias, min, max float64, opts ...Option) (*Rescale, error) {
	return NewBandRescale([]float64{gain}, []float64{bias}, []float64{min}, []float64{max}, opts...)
}

// NewBandRescale returns a rescale with per-band parameters. Absolute values
// are enabled with WithAbs.
func NewBandRescale(gain, bias, min, max []float64, opts ...Option) (*Rescale, error) {
	if len(gain) == 0 || len(bias) == 0 || len(min) == 0 || len(max) == 0 {
		return nil, fmt.Errorf("filter: empty rescale parameters: %w", imaging.ErrInvalidParameter)
	}
	o := applyOptions(opts, defaultOptions())
	WithBandRescale(gain, bias, min, max)(&o)
	p, err := newPost(o)
	if err != nil {
		return nil, err
	}
	if _, err := destinationPrecision(o, raster.Byte); err != nil {
		return nil, err
	}
	return &Rescale{post: p, opts: o}, nil
}

// NewRangeRescale linearly maps [srcMin, srcMax] onto [dstMin, dstMax]:
// srcMax lands on dstMax and results are clamped to the destination range.
func NewRangeRescale(srcMin, srcMax, dstMin, dstMax float64, opts ...Option) (*Rescale, error) {
	if srcMax == srcMin || notFinite(srcMin) || notFinite(srcMax) || notFinite(dstMin) || notFinite(dstMax) {
		return nil, fmt.Errorf("filter: rescale range [%v, %v] -> [%v, %v]: %w",
			srcMin, srcMax, dstMin, dstMax, imaging.ErrInvalidParameter)
	}
	ratio := (dstMax - dstMin) / (srcMax - srcMin)
	return NewRescale(ratio, dstMax-ratio*srcMax, min(dstMin, dstMax), max(dstMin, dstMax), opts...)
}

// Tiling implements imaging.Op.
func (r *Rescale) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Simple}
}

// CreateDestination implements imaging.Op.
func (r *Rescale) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("filter: nil source: %w", imaging.ErrInvalidParameter)
	}
	prec, err := destinationPrecision(r.opts, src.Precision())
	if err != nil {
		return nil, err
	}
	return raster.New(src.Bounds(), src.Bands(), prec)
}

// Filter implements imaging.Op. Only the bands present in both images are
// written.
func (r *Rescale) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(r, src, dst)
	if err != nil {
		return nil, err
	}
	bands := min(src.Bands(), dst.Bands())
	bounds := dst.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			for b := range bands {
				dst.Set(x, y, b, r.post.apply(b, src.At(x, y, b)))
			}
		}
	}
	return dst, nil
}
