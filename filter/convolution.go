package filter

import (
	"fmt"
	"image"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/matrix"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

// Convolution convolves every band with a kernel:
//
//	v(x, y) = Σ k[r, c] * pad(x - (c - cc), y - (r - cr))
//
// where (cr, cc) is the kernel center. The raw sum is post-processed (abs,
// gain, bias, clamp) and quantized to the destination precision.
//
// Defaults: zero padding, identity post-processing, destination precision
// equal to the source.
type Convolution struct {
	kernel matrix.Weights
	halo   image.Point
	pad    padder.Padder
	post   post
	opts   options

	// overFrame sizes created destinations to the source frame instead of
	// its bounds (intermediate of a separable convolution).
	overFrame bool
}

// NewConvolution returns a 2-D convolution with k.
func NewConvolution(k matrix.Weights, opts ...Option) (*Convolution, error) {
	if k == nil {
		return nil, fmt.Errorf("filter: nil kernel: %w", imaging.ErrInvalidParameter)
	}
	o := applyOptions(opts, defaultOptions())
	p, err := newPost(o)
	if err != nil {
		return nil, err
	}
	if _, err := destinationPrecision(o, raster.Byte); err != nil {
		return nil, err
	}
	pad := o.padder
	if pad == nil {
		pad = padder.Zero
	}
	return &Convolution{kernel: k, halo: matrix.Halo(k), pad: pad, post: p, opts: o}, nil
}

// Kernel returns the convolution kernel.
func (c *Convolution) Kernel() matrix.Weights { return c.kernel }

// Tiling implements imaging.Op.
func (c *Convolution) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Padded, Halo: c.halo}
}

// CreateDestination implements imaging.Op.
func (c *Convolution) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("filter: nil source: %w", imaging.ErrInvalidParameter)
	}
	prec, err := destinationPrecision(c.opts, src.Precision())
	if err != nil {
		return nil, err
	}
	r := src.Bounds()
	if c.overFrame {
		r = src.Frame()
	}
	return raster.New(r, src.Bands(), prec)
}

// Filter implements imaging.Op.
func (c *Convolution) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(c, src, dst)
	if err != nil {
		return nil, err
	}
	if err := checkBands(dst, src.Bands()); err != nil {
		return nil, err
	}

	rows, cols := c.kernel.Size()
	cr, cc := c.kernel.Center()
	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			for b := range src.Bands() {
				var sum float64
				for i := range rows {
					for j := range cols {
						w := c.kernel.Weight(i, j)
						if w == 0 {
							continue
						}
						sum += w * c.pad.Sample(src, x-(j-cc), y-(i-cr), b)
					}
				}
				dst.Set(x, y, b, c.post.apply(b, sum))
			}
		}
	}
	return dst, nil
}

// SeparableConvolution convolves with a row vector, then a column vector.
// The result equals the 2-D convolution with their outer product for every
// padder that resolves each axis independently (zero, extend, reflect,
// wrap).
//
// The horizontal pass writes a Float64 intermediate covering the source
// frame, so the vertical pass pads against the same frame as a 2-D
// convolution would. Under imaging.Concurrent the passes run as two stages.
type SeparableConvolution struct {
	horizontal *Convolution
	vertical   *Convolution
}

// NewSeparableConvolution returns the convolution with col ⊗ row.
// Post-processing options and the destination precision apply to the final
// pass.
func NewSeparableConvolution(row, col matrix.Weights, opts ...Option) (*SeparableConvolution, error) {
	if row == nil || col == nil {
		return nil, fmt.Errorf("filter: nil kernel: %w", imaging.ErrInvalidParameter)
	}
	if r, _ := row.Size(); r != 1 {
		return nil, fmt.Errorf("filter: row kernel has %d rows: %w", r, imaging.ErrDimensionMismatch)
	}
	if _, c := col.Size(); c != 1 {
		return nil, fmt.Errorf("filter: column kernel has %d columns: %w", c, imaging.ErrDimensionMismatch)
	}
	o := applyOptions(opts, defaultOptions())

	h, err := NewConvolution(row, WithPadder(o.padder), WithPrecision(raster.Float64))
	if err != nil {
		return nil, err
	}
	h.overFrame = true

	v, err := NewConvolution(col, opts...)
	if err != nil {
		return nil, err
	}
	return &SeparableConvolution{horizontal: h, vertical: v}, nil
}

// Tiling implements imaging.Op.
func (s *SeparableConvolution) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Staged, Stages: []imaging.Op{s.horizontal, s.vertical}}
}

// CreateDestination implements imaging.Op.
func (s *SeparableConvolution) CreateDestination(src *raster.Image) (*raster.Image, error) {
	return s.vertical.CreateDestination(src)
}

// Filter implements imaging.Op.
func (s *SeparableConvolution) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(s, src, dst)
	if err != nil {
		return nil, err
	}
	tmp, err := s.horizontal.Filter(src, nil)
	if err != nil {
		return nil, err
	}
	return s.vertical.Filter(tmp, dst)
}

// NewGaussianBlur returns a separable Gaussian blur with sigma = radius.
func NewGaussianBlur(radius float64, opts ...Option) (*SeparableConvolution, error) {
	if notFinite(radius) || radius < 0 || radius > matrix.MaxRadius {
		return nil, fmt.Errorf("filter: gaussian radius %v: %w", radius, imaging.ErrInvalidParameter)
	}
	k := matrix.CachedGaussian(radius)
	return NewSeparableConvolution(k, k.Transpose(), withExtendDefault(opts)...)
}

// NewBoxBlur returns a separable (2*radius+1)² mean filter.
func NewBoxBlur(radius int, opts ...Option) (*SeparableConvolution, error) {
	if radius < 0 || radius > matrix.MaxRadius {
		return nil, fmt.Errorf("filter: box radius %d: %w", radius, imaging.ErrInvalidParameter)
	}
	k := matrix.Box(radius)
	return NewSeparableConvolution(k, k.Transpose(), withExtendDefault(opts)...)
}

// withExtendDefault makes edge extension the default padder of blurs.
func withExtendDefault(opts []Option) []Option {
	return append([]Option{WithPadder(padder.Extend{})}, opts...)
}
