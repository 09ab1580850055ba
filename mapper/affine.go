package mapper

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/imaging/internal/errkind"
)

// Affine applies a forward affine transform given as
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// stored as f64.Aff3{a, b, c, d, e, f}. The destination keeps the source
// geometry; pixels mapping outside the source are padded.
type Affine struct {
	forward f64.Aff3
	inverse f64.Aff3
}

// NewAffine returns an affine mapper. Singular matrices are rejected.
func NewAffine(m f64.Aff3) (*Affine, error) {
	inv, ok := Invert(m)
	if !ok {
		return nil, fmt.Errorf("mapper: affine %v is singular: %w", m, errkind.ErrInvalidParameter)
	}
	return &Affine{forward: m, inverse: inv}, nil
}

// Matrix returns the forward transform.
func (a *Affine) Matrix() f64.Aff3 { return a.forward }

// Bind implements Mapper.
func (a *Affine) Bind(image.Rectangle) Mapping {
	inv := a.inverse
	return MappingFunc(func(x, y float64) (float64, float64) {
		return Apply(inv, x, y)
	})
}

// DestinationBounds implements Mapper.
func (a *Affine) DestinationBounds(src image.Rectangle) image.Rectangle { return src }

// Identity returns the identity transform.
func Identity() f64.Aff3 {
	return f64.Aff3{1, 0, 0, 0, 1, 0}
}

// Translation returns a transform shifting points by (tx, ty).
func Translation(tx, ty float64) f64.Aff3 {
	return f64.Aff3{1, 0, tx, 0, 1, ty}
}

// Rotation returns a transform rotating by angle radians around (cx, cy).
// Positive angles rotate clockwise in image coordinates (y down).
func Rotation(angle, cx, cy float64) f64.Aff3 {
	sin, cos := math.Sincos(angle)
	r := f64.Aff3{cos, -sin, 0, sin, cos, 0}
	return Multiply(Translation(cx, cy), Multiply(r, Translation(-cx, -cy)))
}

// Multiply returns m*n: n is applied first, then m.
func Multiply(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// Apply transforms the point (x, y).
func Apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Invert returns the inverse transform. ok is false for singular matrices.
func Invert(m f64.Aff3) (inv f64.Aff3, ok bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-12 {
		return f64.Aff3{}, false
	}
	invDet := 1 / det
	return f64.Aff3{
		m[4] * invDet,
		-m[1] * invDet,
		(m[1]*m[5] - m[4]*m[2]) * invDet,
		-m[3] * invDet,
		m[0] * invDet,
		(m[3]*m[2] - m[0]*m[5]) * invDet,
	}, true
}
