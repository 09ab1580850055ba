package filter

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/interp"
	"github.com/gogpu/imaging/mapper"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

// GeometricTransform resamples the source through an inverse mapping.
//
// For destination pixel (x, y) the pixel center (x+0.5, y+0.5) is mapped
// back to the source plane and shifted by -0.5 into sample-index space
// before interpolation. The mapping is bound to the source bounds once per
// Filter call.
//
// Defaults: bilinear interpolation, extend padding, no clamping, source
// precision.
type GeometricTransform struct {
	mapper mapper.Mapper
	interp interp.Interpolant
	pad    padder.Padder
	opts   options
}

// NewGeometricTransform returns a transform driven by m.
func NewGeometricTransform(m mapper.Mapper, opts ...Option) (*GeometricTransform, error) {
	if m == nil {
		return nil, fmt.Errorf("filter: nil mapper: %w", imaging.ErrInvalidParameter)
	}
	o := applyOptions(opts, defaultOptions())
	if o.clamp && !(o.clampMin <= o.clampMax) {
		return nil, fmt.Errorf("filter: clamp [%v, %v]: %w", o.clampMin, o.clampMax, imaging.ErrInvalidParameter)
	}
	if _, err := destinationPrecision(o, raster.Byte); err != nil {
		return nil, err
	}
	g := &GeometricTransform{mapper: m, interp: o.interp, pad: o.padder, opts: o}
	if g.interp == nil {
		g.interp = interp.Bilinear{}
	}
	if g.pad == nil {
		g.pad = padder.Extend{}
	}
	return g, nil
}

// NewResample scales the image by (sx, sy). The destination is
// round(w*sx) x round(h*sy).
func NewResample(sx, sy float64, opts ...Option) (*GeometricTransform, error) {
	m, err := mapper.NewScale(sx, sy)
	if err != nil {
		return nil, err
	}
	return NewGeometricTransform(m, opts...)
}

// NewTwirl rotates the image around (cx, cy), given as fractions of the
// width and height, by an angle growing with strength towards the center.
func NewTwirl(cx, cy, strength float64, opts ...Option) (*GeometricTransform, error) {
	m, err := mapper.NewTwirl(cx, cy, strength)
	if err != nil {
		return nil, err
	}
	return NewGeometricTransform(m, opts...)
}

// NewAffine applies the forward affine transform m. The destination keeps
// the source bounds.
func NewAffine(m f64.Aff3, opts ...Option) (*GeometricTransform, error) {
	a, err := mapper.NewAffine(m)
	if err != nil {
		return nil, err
	}
	return NewGeometricTransform(a, opts...)
}

// Tiling implements imaging.Op.
func (g *GeometricTransform) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Mapped}
}

// CreateDestination implements imaging.Op.
func (g *GeometricTransform) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("filter: nil source: %w", imaging.ErrInvalidParameter)
	}
	prec, err := destinationPrecision(g.opts, src.Precision())
	if err != nil {
		return nil, err
	}
	return raster.New(g.mapper.DestinationBounds(src.Bounds()), src.Bands(), prec)
}

// Filter implements imaging.Op.
func (g *GeometricTransform) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(g, src, dst)
	if err != nil {
		return nil, err
	}
	if err := checkBands(dst, src.Bands()); err != nil {
		return nil, err
	}

	mapping := g.mapper.Bind(src.Bounds())
	sample := func(x, y float64, b int) float64 {
		return g.interp.Interpolate(src, g.pad, x, y, b)
	}
	if g.opts.clamp {
		low, high := g.opts.clampMin, g.opts.clampMax
		sample = func(x, y float64, b int) float64 {
			return lo.Clamp(g.interp.Interpolate(src, g.pad, x, y, b), low, high)
		}
	}

	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			sx, sy := mapping.Inverse(float64(x)+0.5, float64(y)+0.5)
			sx, sy = sx-0.5, sy-0.5
			for b := range src.Bands() {
				dst.Set(x, y, b, sample(sx, sy, b))
			}
		}
	}
	return dst, nil
}
