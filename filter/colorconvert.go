package filter

import (
	"fmt"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/colormodel"
	"github.com/gogpu/imaging/raster"
)

// ColorConvert converts every pixel from one color model to another.
//
// The destination stays Byte when the source is Byte and the target model is
// byte coded (RGB, RGBA, Gray, CMY, YCbCr); otherwise it is Float32.
type ColorConvert struct {
	from, to colormodel.Model
	opts     options
}

// NewColorConvert returns a converter from one model to another.
func NewColorConvert(from, to colormodel.Model, opts ...Option) (*ColorConvert, error) {
	if !from.IsValid() || !to.IsValid() {
		return nil, fmt.Errorf("filter: color models %d -> %d: %w", from, to, imaging.ErrInvalidParameter)
	}
	o := applyOptions(opts, defaultOptions())
	if _, err := destinationPrecision(o, raster.Byte); err != nil {
		return nil, err
	}
	return &ColorConvert{from: from, to: to, opts: o}, nil
}

// Tiling implements imaging.Op.
func (c *ColorConvert) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Simple}
}

// CreateDestination implements imaging.Op.
func (c *ColorConvert) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if err := c.checkSource(src); err != nil {
		return nil, err
	}
	prec, err := destinationPrecision(c.opts, c.defaultPrecision(src.Precision()))
	if err != nil {
		return nil, err
	}
	return raster.New(src.Bounds(), c.to.Bands(), prec)
}

func (c *ColorConvert) defaultPrecision(src raster.Precision) raster.Precision {
	if src == raster.Byte && c.to.IsByteCoded() {
		return raster.Byte
	}
	return raster.Float32
}

func (c *ColorConvert) checkSource(src *raster.Image) error {
	if src == nil {
		return fmt.Errorf("filter: nil source: %w", imaging.ErrInvalidParameter)
	}
	if src.Bands() != c.from.Bands() {
		return fmt.Errorf("filter: %d-band source for %v: %w", src.Bands(), c.from, imaging.ErrDimensionMismatch)
	}
	return nil
}

// Filter implements imaging.Op.
func (c *ColorConvert) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(c, src, dst)
	if err != nil {
		return nil, err
	}
	if err := c.checkSource(src); err != nil {
		return nil, err
	}
	if err := checkBands(dst, c.to.Bands()); err != nil {
		return nil, err
	}

	in := make([]float64, c.from.Bands())
	out := make([]float64, c.to.Bands())
	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			in = src.Pixel(x, y, in)
			colormodel.Convert(c.from, c.to, in, out)
			dst.SetPixel(x, y, out)
		}
	}
	return dst, nil
}
