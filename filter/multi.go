package filter

import (
	"fmt"
	"image"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

// MultiCombineFunc computes an output pixel from one sample per input.
type MultiCombineFunc func(in, out []float64)

// Multi combines band 0 of several images into a multi-band image. The
// filtered image is appended to the configured sources, so in has
// len(sources)+1 entries. The destination covers the intersection of all
// inputs and defaults to Byte precision.
type Multi struct {
	sources []*raster.Image
	bands   int
	combine MultiCombineFunc
	opts    options
}

// NewMulti returns a multi-source operation producing bands bands.
func NewMulti(sources []*raster.Image, bands int, fn MultiCombineFunc, opts ...Option) (*Multi, error) {
	if fn == nil {
		return nil, fmt.Errorf("filter: nil combine function: %w", imaging.ErrInvalidParameter)
	}
	if bands <= 0 {
		return nil, fmt.Errorf("filter: %d output bands: %w", bands, imaging.ErrInvalidParameter)
	}
	for i, s := range sources {
		if s == nil {
			return nil, fmt.Errorf("filter: source %d is nil: %w", i, imaging.ErrInvalidParameter)
		}
	}
	o := applyOptions(opts, defaultOptions())
	if _, err := destinationPrecision(o, raster.Byte); err != nil {
		return nil, err
	}
	return &Multi{
		sources: append([]*raster.Image(nil), sources...),
		bands:   bands,
		combine: fn,
		opts:    o,
	}, nil
}

// NewBandMerge stacks band 0 of every source, then of the filtered image,
// into one band each. WithAbs and WithBandRescale apply per output band.
func NewBandMerge(sources []*raster.Image, opts ...Option) (*Multi, error) {
	p, err := newPost(applyOptions(opts, defaultOptions()))
	if err != nil {
		return nil, err
	}
	return NewMulti(sources, len(sources)+1, func(in, out []float64) {
		for b, v := range in {
			out[b] = p.apply(b, v)
		}
	}, opts...)
}

// Tiling implements imaging.Op.
func (m *Multi) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Mapped}
}

func (m *Multi) bounds(src *raster.Image) (image.Rectangle, error) {
	if src == nil {
		return image.Rectangle{}, fmt.Errorf("filter: nil source: %w", imaging.ErrInvalidParameter)
	}
	r := src.Bounds()
	for _, s := range m.sources {
		r = r.Intersect(s.Bounds())
	}
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("filter: sources do not overlap: %w", imaging.ErrDimensionMismatch)
	}
	return r, nil
}

// CreateDestination implements imaging.Op.
func (m *Multi) CreateDestination(src *raster.Image) (*raster.Image, error) {
	r, err := m.bounds(src)
	if err != nil {
		return nil, err
	}
	prec, err := destinationPrecision(m.opts, raster.Byte)
	if err != nil {
		return nil, err
	}
	return raster.New(r, m.bands, prec)
}

// Filter implements imaging.Op.
func (m *Multi) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(m, src, dst)
	if err != nil {
		return nil, err
	}
	r, err := m.bounds(src)
	if err != nil {
		return nil, err
	}
	if !r.In(dst.Frame()) {
		return nil, fmt.Errorf("filter: destination %v does not cover %v: %w", dst.Frame(), r, imaging.ErrDimensionMismatch)
	}
	if err := checkBands(dst, m.bands); err != nil {
		return nil, err
	}

	inputs := append(append([]*raster.Image(nil), m.sources...), src)
	in := make([]float64, len(inputs))
	out := make([]float64, m.bands)
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			for i, img := range inputs {
				in[i] = img.At(x, y, 0)
			}
			m.combine(in, out)
			dst.SetPixel(x, y, out)
		}
	}
	return dst, nil
}
