// Package interp samples rasters at fractional coordinates.
//
// Coordinates are in pixel-index space: (0, 0) is the center of the top-left
// sample. Support outside the image frame is read through a padder.
package interp

import (
	"fmt"
	"math"

	"github.com/gogpu/imaging/internal/errkind"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

// Interpolant reconstructs a sample between pixel centers.
type Interpolant interface {
	// Interpolate returns band of img at (x, y).
	Interpolate(img *raster.Image, p padder.Padder, x, y float64, band int) float64

	// Support returns the radius, in pixels, of the neighborhood read.
	Support() int
}

// Mode enumerates the built-in interpolants.
type Mode uint8

const (
	// ModeNearest selects the closest sample.
	ModeNearest Mode = iota

	// ModeBilinear blends the 2x2 neighborhood linearly.
	ModeBilinear

	// ModeBicubic applies Catmull-Rom splines over the 4x4 neighborhood.
	ModeBicubic
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNearest:
		return "Nearest"
	case ModeBilinear:
		return "Bilinear"
	case ModeBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// New returns the interpolant for m.
func New(m Mode) (Interpolant, error) {
	switch m {
	case ModeNearest:
		return Nearest{}, nil
	case ModeBilinear:
		return Bilinear{}, nil
	case ModeBicubic:
		return Bicubic{}, nil
	default:
		return nil, fmt.Errorf("interp: mode %d: %w", m, errkind.ErrInvalidParameter)
	}
}

// Nearest rounds to the closest sample, halves rounding up.
type Nearest struct{}

// Support implements Interpolant.
func (Nearest) Support() int { return 0 }

// Interpolate implements Interpolant.
func (Nearest) Interpolate(img *raster.Image, p padder.Padder, x, y float64, band int) float64 {
	return p.Sample(img, int(math.Floor(x+0.5)), int(math.Floor(y+0.5)), band)
}

// Bilinear interpolates between the four surrounding samples.
type Bilinear struct{}

// Support implements Interpolant.
func (Bilinear) Support() int { return 1 }

// Interpolate implements Interpolant.
func (Bilinear) Interpolate(img *raster.Image, p padder.Padder, x, y float64, band int) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	x0, y0 := int(fx), int(fy)
	tx, ty := x-fx, y-fy

	v00 := p.Sample(img, x0, y0, band)
	v10 := p.Sample(img, x0+1, y0, band)
	v01 := p.Sample(img, x0, y0+1, band)
	v11 := p.Sample(img, x0+1, y0+1, band)

	return lerp2D(v00, v10, v01, v11, tx, ty)
}

// Bicubic interpolates with Catmull-Rom splines over a 4x4 neighborhood.
type Bicubic struct{}

// Support implements Interpolant.
func (Bicubic) Support() int { return 2 }

// Interpolate implements Interpolant.
func (Bicubic) Interpolate(img *raster.Image, p padder.Padder, x, y float64, band int) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	x0, y0 := int(fx), int(fy)
	tx, ty := x-fx, y-fy

	var wx, wy [4]float64
	for i := range 4 {
		wx[i] = cubicWeight(tx - float64(i-1))
		wy[i] = cubicWeight(ty - float64(i-1))
	}

	var sum float64
	for j := range 4 {
		var row float64
		for i := range 4 {
			row += wx[i] * p.Sample(img, x0+i-1, y0+j-1, band)
		}
		sum += wy[j] * row
	}
	return sum
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}
