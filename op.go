package imaging

import (
	"fmt"
	"image"

	"github.com/gogpu/imaging/raster"
)

// Op is a raster operation.
//
// CreateDestination allocates an image sized and typed for the result of
// filtering src. Filter writes the result for every pixel of dst's bounds;
// a nil dst is created with CreateDestination first. Filter returns the
// destination it wrote.
//
// Filter must only write inside dst.Bounds() and must produce the same
// samples for a pixel whether dst is the whole destination or a Window of
// it. This is what lets Concurrent split work into tiles.
type Op interface {
	Tiling() Tiling
	CreateDestination(src *raster.Image) (*raster.Image, error)
	Filter(src, dst *raster.Image) (*raster.Image, error)
}

// Strategy is the tiling capability an Op declares.
type Strategy uint8

const (
	// None runs the op in a single call over the whole image.
	None Strategy = iota

	// Simple tiles source and destination identically.
	Simple

	// Padded tiles the destination and grows each source tile by the halo.
	Padded

	// Mapped tiles the destination only; every tile reads the whole source.
	Mapped

	// Staged runs a sequence of ops, each over the whole image.
	Staged
)

var strategyNames = [...]string{
	None:   "none",
	Simple: "simple",
	Padded: "padded",
	Mapped: "mapped",
	Staged: "staged",
}

// String returns the strategy name.
func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", s)
}

// Tiling describes how an Op may be split into tiles.
type Tiling struct {
	Strategy Strategy

	// Halo is the neighborhood reach for Padded ops.
	Halo image.Point

	// Stages are the ops of a Staged op, run in order.
	Stages []Op
}

// NullOp copies samples. It is the default behavior concrete filters build
// on: its CreateDestination allocates an image with the source's bounds,
// bands and precision.
type NullOp struct{}

// Tiling implements Op.
func (NullOp) Tiling() Tiling { return Tiling{Strategy: Simple} }

// CreateDestination implements Op.
func (NullOp) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("imaging: nil source: %w", ErrInvalidParameter)
	}
	return raster.NewCompatible(src)
}

// Filter copies every sample of dst ∩ src.
func (n NullOp) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := EnsureDestination(n, src, dst)
	if err != nil {
		return nil, err
	}
	r := dst.Bounds().Intersect(src.Bounds())
	bands := min(src.Bands(), dst.Bands())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			for b := range bands {
				dst.Set(x, y, b, src.At(x, y, b))
			}
		}
	}
	return dst, nil
}

// EnsureDestination validates src and returns dst, creating it with
// op.CreateDestination when nil.
func EnsureDestination(op Op, src, dst *raster.Image) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("imaging: nil source: %w", ErrInvalidParameter)
	}
	if dst != nil {
		return dst, nil
	}
	return op.CreateDestination(src)
}
