package filter

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

// CombineFunc combines a left and a right sample.
type CombineFunc func(left, right float64) float64

// PixelCombineFunc combines two packed pixels. Bands 0, 1, 2 and 3 occupy
// bits 16-23, 8-15, 0-7 and 24-31 (0xAARRGGBB for RGBA).
type PixelCombineFunc func(left, right uint32) uint32

// Binary combines a fixed left image with the filtered (right) image.
//
// The destination covers the intersection of both images and has the
// smaller band count. Every tile may read anywhere in both images.
type Binary struct {
	left    *raster.Image
	combine CombineFunc
	pixel   PixelCombineFunc
	opts    options
}

// NewBinary returns a per-sample binary operation.
func NewBinary(left *raster.Image, fn CombineFunc, opts ...Option) (*Binary, error) {
	if fn == nil {
		return nil, fmt.Errorf("filter: nil combine function: %w", imaging.ErrInvalidParameter)
	}
	return newBinary(left, &Binary{combine: fn}, opts)
}

// NewPixelBinary returns a binary operation on packed pixels. Both images
// must be Byte with at most four bands.
func NewPixelBinary(left *raster.Image, fn PixelCombineFunc, opts ...Option) (*Binary, error) {
	if fn == nil {
		return nil, fmt.Errorf("filter: nil combine function: %w", imaging.ErrInvalidParameter)
	}
	if err := checkPackable(left); err != nil {
		return nil, err
	}
	return newBinary(left, &Binary{pixel: fn}, opts)
}

func newBinary(left *raster.Image, b *Binary, opts []Option) (*Binary, error) {
	if left == nil {
		return nil, fmt.Errorf("filter: nil left image: %w", imaging.ErrInvalidParameter)
	}
	b.left = left
	b.opts = applyOptions(opts, defaultOptions())
	if _, err := destinationPrecision(b.opts, raster.Byte); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBlend returns alpha*left + (1-alpha)*right, alpha in [0, 1].
func NewBlend(left *raster.Image, alpha float64, opts ...Option) (*Binary, error) {
	if !(alpha >= 0 && alpha <= 1) {
		return nil, fmt.Errorf("filter: blend alpha %v: %w", alpha, imaging.ErrInvalidParameter)
	}
	return NewBinary(left, func(l, r float64) float64 {
		return alpha*l + (1-alpha)*r
	}, opts...)
}

// NewDifference returns |left - right|.
func NewDifference(left *raster.Image, opts ...Option) (*Binary, error) {
	return NewBinary(left, func(l, r float64) float64 {
		return math.Abs(l - r)
	}, opts...)
}

// LogicalOp is a bitwise operation on packed pixels.
type LogicalOp uint8

const (
	// And is left & right.
	And LogicalOp = iota
	// Or is left | right.
	Or
	// Xor is left ^ right.
	Xor
	// Nor is ^(left | right).
	Nor
)

// NewLogical returns a bitwise operation on packed Byte pixels.
func NewLogical(left *raster.Image, op LogicalOp, opts ...Option) (*Binary, error) {
	var fn PixelCombineFunc
	switch op {
	case And:
		fn = func(l, r uint32) uint32 { return l & r }
	case Or:
		fn = func(l, r uint32) uint32 { return l | r }
	case Xor:
		fn = func(l, r uint32) uint32 { return l ^ r }
	case Nor:
		fn = func(l, r uint32) uint32 { return ^(l | r) }
	default:
		return nil, fmt.Errorf("filter: logical op %d: %w", op, imaging.ErrInvalidParameter)
	}
	return NewPixelBinary(left, fn, opts...)
}

// Tiling implements imaging.Op.
func (b *Binary) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Mapped}
}

func (b *Binary) geometry(src *raster.Image) (image.Rectangle, int, error) {
	if src == nil {
		return image.Rectangle{}, 0, fmt.Errorf("filter: nil source: %w", imaging.ErrInvalidParameter)
	}
	r := b.left.Bounds().Intersect(src.Bounds())
	if r.Empty() {
		return image.Rectangle{}, 0, fmt.Errorf("filter: %v and %v do not overlap: %w",
			b.left.Bounds(), src.Bounds(), imaging.ErrDimensionMismatch)
	}
	return r, min(b.left.Bands(), src.Bands()), nil
}

// CreateDestination implements imaging.Op.
func (b *Binary) CreateDestination(src *raster.Image) (*raster.Image, error) {
	r, bands, err := b.geometry(src)
	if err != nil {
		return nil, err
	}
	prec, err := destinationPrecision(b.opts, src.Precision())
	if err != nil {
		return nil, err
	}
	return raster.New(r, bands, prec)
}

// Filter implements imaging.Op.
func (b *Binary) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(b, src, dst)
	if err != nil {
		return nil, err
	}
	r, bands, err := b.geometry(src)
	if err != nil {
		return nil, err
	}
	if !r.In(dst.Frame()) {
		return nil, fmt.Errorf("filter: destination %v does not cover %v: %w", dst.Frame(), r, imaging.ErrDimensionMismatch)
	}
	if err := checkBands(dst, bands); err != nil {
		return nil, err
	}

	r = r.Intersect(dst.Bounds())
	if b.pixel != nil {
		if err := checkPackable(src); err != nil {
			return nil, err
		}
		b.filterPacked(src, dst, r, bands)
		return dst, nil
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			for band := range bands {
				dst.Set(x, y, band, b.combine(b.left.At(x, y, band), src.At(x, y, band)))
			}
		}
	}
	return dst, nil
}

func (b *Binary) filterPacked(src, dst *raster.Image, r image.Rectangle, bands int) {
	var lpx, rpx []float64
	out := make([]float64, bands)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			lpx = b.left.Pixel(x, y, lpx)
			rpx = src.Pixel(x, y, rpx)
			unpack(b.pixel(pack(lpx[:bands]), pack(rpx[:bands])), out)
			dst.SetPixel(x, y, out)
		}
	}
}

var packShift = [4]uint{16, 8, 0, 24}

func pack(px []float64) uint32 {
	var p uint32
	for i, v := range px {
		p |= uint32(uint8(v)) << packShift[i]
	}
	return p
}

func unpack(p uint32, dst []float64) {
	for i := range dst {
		dst[i] = float64(uint8(p >> packShift[i]))
	}
}

func checkPackable(img *raster.Image) error {
	if img == nil {
		return fmt.Errorf("filter: nil image: %w", imaging.ErrInvalidParameter)
	}
	if img.Precision() != raster.Byte || img.Bands() > 4 {
		return fmt.Errorf("filter: cannot pack %d %v bands: %w", img.Bands(), img.Precision(), imaging.ErrUnsupportedPrecision)
	}
	return nil
}
