// Package mapper provides inverse coordinate mappings for geometric
// transforms.
//
// Mappings work in the continuous pixel plane, where pixel (x, y) covers
// [x, x+1) x [y, y+1). A Mapper is an immutable description; Bind derives
// the per-call Mapping from the source bounds, so a Mapper can be shared by
// concurrent filter calls.
package mapper

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/imaging/internal/errkind"
)

// Mapper maps destination coordinates back to the source plane.
type Mapper interface {
	// Bind precomputes the transform-invariant state for a source.
	Bind(src image.Rectangle) Mapping

	// DestinationBounds returns the destination geometry for a source.
	DestinationBounds(src image.Rectangle) image.Rectangle
}

// Mapping is a bound inverse transform.
type Mapping interface {
	Inverse(x, y float64) (sx, sy float64)
}

// MappingFunc adapts a function to the Mapping interface.
type MappingFunc func(x, y float64) (float64, float64)

// Inverse implements Mapping.
func (f MappingFunc) Inverse(x, y float64) (float64, float64) { return f(x, y) }

// Scale resizes the image by independent horizontal and vertical factors.
type Scale struct {
	sx, sy float64
}

// NewScale returns a scaling mapper. Factors must be positive and finite.
func NewScale(sx, sy float64) (*Scale, error) {
	if !positive(sx) || !positive(sy) {
		return nil, fmt.Errorf("mapper: scale (%v, %v): %w", sx, sy, errkind.ErrInvalidParameter)
	}
	return &Scale{sx: sx, sy: sy}, nil
}

// Bind implements Mapper.
func (s *Scale) Bind(image.Rectangle) Mapping {
	return MappingFunc(func(x, y float64) (float64, float64) {
		return x / s.sx, y / s.sy
	})
}

// DestinationBounds implements Mapper. The size is round(w*sx) x round(h*sy).
func (s *Scale) DestinationBounds(src image.Rectangle) image.Rectangle {
	minX := int(math.Round(float64(src.Min.X) * s.sx))
	minY := int(math.Round(float64(src.Min.Y) * s.sy))
	return image.Rect(minX, minY,
		minX+int(math.Round(float64(src.Dx())*s.sx)),
		minY+int(math.Round(float64(src.Dy())*s.sy)))
}

// Twirl rotates pixels around a center by an angle that grows with their
// distance from it.
type Twirl struct {
	cx, cy   float64
	strength float64
}

// NewTwirl returns a twirl centered at (cx, cy), given as fractions of the
// source width and height.
func NewTwirl(cx, cy, strength float64) (*Twirl, error) {
	if cx < 0 || cx > 1 || cy < 0 || cy > 1 {
		return nil, fmt.Errorf("mapper: twirl center (%v, %v) outside [0,1]: %w",
			cx, cy, errkind.ErrInvalidParameter)
	}
	if math.IsNaN(strength) || math.IsInf(strength, 0) {
		return nil, fmt.Errorf("mapper: twirl strength %v: %w", strength, errkind.ErrInvalidParameter)
	}
	return &Twirl{cx: cx, cy: cy, strength: strength}, nil
}

// Bind implements Mapper.
func (t *Twirl) Bind(src image.Rectangle) Mapping {
	w, h := float64(src.Dx()), float64(src.Dy())
	centerX := float64(src.Min.X) + math.Floor(t.cx*w) + 0.5
	centerY := float64(src.Min.Y) + math.Floor(t.cy*h) + 0.5
	minDim := math.Min(w, h)
	strength := t.strength

	return MappingFunc(func(x, y float64) (float64, float64) {
		dx, dy := x-centerX, y-centerY
		r := math.Hypot(dx, dy)
		theta := math.Atan2(dy, dx) + strength*(r-minDim)/minDim
		return r*math.Cos(theta) + centerX, r*math.Sin(theta) + centerY
	})
}

// DestinationBounds implements Mapper.
func (t *Twirl) DestinationBounds(src image.Rectangle) image.Rectangle { return src }

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
