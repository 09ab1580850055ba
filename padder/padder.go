// Package padder answers "which sample lies at (x, y)" for coordinates
// outside a raster's frame.
//
// Padders are stateless values and safe for concurrent use. They resolve
// coordinates against raster.Image.Frame, so a tile window handed to a
// worker pads exactly like the image it was cut from.
package padder

import (
	"fmt"
	"image"

	"golang.org/x/text/cases"

	"github.com/gogpu/imaging/internal/errkind"
	"github.com/gogpu/imaging/raster"
)

// Padder returns samples for any integer coordinate.
type Padder interface {
	Sample(img *raster.Image, x, y, band int) float64
}

// Type enumerates the built-in padders.
type Type uint8

const (
	// TypeZero pads with 0.
	TypeZero Type = iota

	// TypeExtend repeats the nearest edge sample.
	TypeExtend

	// TypeReflect mirrors the image across its edges.
	TypeReflect

	// TypeWrap tiles the image toroidally.
	TypeWrap

	typeCount
)

var typeNames = [typeCount]string{
	TypeZero:    "zero",
	TypeExtend:  "extend",
	TypeReflect: "reflect",
	TypeWrap:    "wrap",
}

// String returns the padder name.
func (t Type) String() string {
	if t >= typeCount {
		return "unknown"
	}
	return typeNames[t]
}

// ParseType returns the Type with the given case-insensitive name.
func ParseType(name string) (Type, error) {
	folded := cases.Fold().String(name)
	for t, n := range typeNames {
		if n == folded {
			return Type(t), nil
		}
	}
	return 0, fmt.Errorf("padder: unknown type %q: %w", name, errkind.ErrInvalidParameter)
}

// New returns the padder for t.
func New(t Type) (Padder, error) {
	switch t {
	case TypeZero:
		return Zero, nil
	case TypeExtend:
		return Extend{}, nil
	case TypeReflect:
		return Reflect{}, nil
	case TypeWrap:
		return Wrap{}, nil
	default:
		return nil, fmt.Errorf("padder: type %d: %w", t, errkind.ErrInvalidParameter)
	}
}

// Zero pads with 0.
var Zero = Constant{}

// Constant pads with a fixed value.
type Constant struct {
	Value float64
}

// Sample implements Padder.
func (p Constant) Sample(img *raster.Image, x, y, band int) float64 {
	if !(image.Point{x, y}.In(img.Frame())) {
		return p.Value
	}
	return img.At(x, y, band)
}

// Extend clamps coordinates to the nearest edge.
type Extend struct{}

// Sample implements Padder.
func (Extend) Sample(img *raster.Image, x, y, band int) float64 {
	f := img.Frame()
	return img.At(clamp(x, f.Min.X, f.Max.X), clamp(y, f.Min.Y, f.Max.Y), band)
}

// Reflect mirrors coordinates with the edge sample repeated, so -1 maps to
// 0 and width maps to width-1.
type Reflect struct{}

// Sample implements Padder.
func (Reflect) Sample(img *raster.Image, x, y, band int) float64 {
	f := img.Frame()
	return img.At(reflect(x, f.Min.X, f.Max.X), reflect(y, f.Min.Y, f.Max.Y), band)
}

// Wrap treats the image as a torus.
type Wrap struct{}

// Sample implements Padder.
func (Wrap) Sample(img *raster.Image, x, y, band int) float64 {
	f := img.Frame()
	return img.At(wrap(x, f.Min.X, f.Max.X), wrap(y, f.Min.Y, f.Max.Y), band)
}

// clamp maps v into [lo, hi).
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v >= hi {
		return hi - 1
	}
	return v
}

// wrap maps v into [lo, hi) modulo the interval length.
func wrap(v, lo, hi int) int {
	n := hi - lo
	if n <= 0 {
		return lo
	}
	m := (v - lo) % n
	if m < 0 {
		m += n
	}
	return lo + m
}

// reflect maps v into [lo, hi) by mirroring with period 2n.
func reflect(v, lo, hi int) int {
	n := hi - lo
	if n <= 0 {
		return lo
	}
	m := (v - lo) % (2 * n)
	if m < 0 {
		m += 2 * n
	}
	if m >= n {
		m = 2*n - 1 - m
	}
	return lo + m
}
