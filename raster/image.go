// Package raster provides the multi-band pixel buffers filtered by imaging
// operations.
//
// An Image has a bounds rectangle in absolute coordinates (as in the standard
// image package), a band count and a sample precision. Views returned by
// Window and SubImage share the parent's storage and never copy samples.
//
// Thread safety: concurrent reads are safe. Concurrent writes are safe only
// through views with disjoint bounds.
package raster

import (
	"fmt"
	"image"

	"github.com/gogpu/imaging/internal/errkind"
)

// Image is a multi-band raster.
//
// Every image carries three rectangles: the extent of its storage, the
// frame against which out-of-range coordinates are padded, and its own
// bounds. A root image has all three equal. A Window keeps the parent's
// frame, so padding a window reproduces padding of the whole image.
// A SubImage resets the frame to its own bounds and behaves like an
// independent, cropped image.
type Image struct {
	buf   store
	prec  Precision
	bands int
	root  image.Rectangle
	frame image.Rectangle
	rect  image.Rectangle
}

// New allocates a zeroed image covering r.
func New(r image.Rectangle, bands int, p Precision) (*Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("raster: bounds %v: %w", r, errkind.ErrDimensionMismatch)
	}
	if bands <= 0 {
		return nil, fmt.Errorf("raster: %d bands: %w", bands, errkind.ErrDimensionMismatch)
	}
	if !p.IsValid() {
		return nil, fmt.Errorf("raster: precision %d: %w", p, errkind.ErrUnsupportedPrecision)
	}
	return &Image{
		buf:   newStore(p, r.Dx()*r.Dy()*bands),
		prec:  p,
		bands: bands,
		root:  r,
		frame: r,
		rect:  r,
	}, nil
}

// NewSize allocates a zeroed width x height image with its origin at (0, 0).
func NewSize(width, height, bands int, p Precision) (*Image, error) {
	return New(image.Rect(0, 0, width, height), bands, p)
}

// NewFrom allocates an image covering r and fills it with samples given in
// row-major, band-interleaved order. Samples are quantized to p.
func NewFrom(r image.Rectangle, bands int, p Precision, samples []float64) (*Image, error) {
	m, err := New(r, bands, p)
	if err != nil {
		return nil, err
	}
	if len(samples) != m.buf.len() {
		return nil, fmt.Errorf("raster: %d samples for %v x %d bands: %w",
			len(samples), r, bands, errkind.ErrDimensionMismatch)
	}
	for i, v := range samples {
		m.buf.save(i, v)
	}
	return m, nil
}

// NewCompatible allocates a zeroed image with the bounds, band count and
// precision of src.
func NewCompatible(src *Image) (*Image, error) {
	return New(src.rect, src.bands, src.prec)
}

// Bounds returns the view rectangle.
func (m *Image) Bounds() image.Rectangle { return m.rect }

// Frame returns the rectangle out-of-range coordinates are padded against.
func (m *Image) Frame() image.Rectangle { return m.frame }

// Bands returns the number of samples per pixel.
func (m *Image) Bands() int { return m.bands }

// Precision returns the sample precision.
func (m *Image) Precision() Precision { return m.prec }

// Width returns the view width.
func (m *Image) Width() int { return m.rect.Dx() }

// Height returns the view height.
func (m *Image) Height() int { return m.rect.Dy() }

// IsView reports whether the image is a window into a larger buffer.
func (m *Image) IsView() bool { return m.rect != m.root }

func (m *Image) offset(x, y, band int) int {
	return ((y-m.root.Min.Y)*m.root.Dx()+(x-m.root.Min.X))*m.bands + band
}

// At returns sample band of pixel (x, y). Any pixel of the frame may be
// read, including pixels outside the view bounds; other coordinates
// return 0.
func (m *Image) At(x, y, band int) float64 {
	if !(image.Point{x, y}.In(m.frame)) {
		return 0
	}
	return m.buf.load(m.offset(x, y, band))
}

// Set stores v quantized to the image precision. Pixels outside the view
// bounds are left untouched.
func (m *Image) Set(x, y, band int, v float64) {
	if !(image.Point{x, y}.In(m.rect)) {
		return
	}
	m.buf.save(m.offset(x, y, band), v)
}

// Pixel reads every band of (x, y) into dst, growing it when needed.
func (m *Image) Pixel(x, y int, dst []float64) []float64 {
	if cap(dst) < m.bands {
		dst = make([]float64, m.bands)
	}
	dst = dst[:m.bands]
	if !(image.Point{x, y}.In(m.frame)) {
		clear(dst)
		return dst
	}
	i := m.offset(x, y, 0)
	for b := range dst {
		dst[b] = m.buf.load(i + b)
	}
	return dst
}

// SetPixel stores up to Bands() samples at (x, y).
func (m *Image) SetPixel(x, y int, samples []float64) {
	if !(image.Point{x, y}.In(m.rect)) {
		return
	}
	i := m.offset(x, y, 0)
	for b, v := range samples[:min(len(samples), m.bands)] {
		m.buf.save(i+b, v)
	}
}

// Window returns a read/write view of r ∩ Bounds() that keeps the padding
// frame of the receiver. Tilers hand windows to workers.
func (m *Image) Window(r image.Rectangle) *Image {
	v := *m
	v.rect = r.Intersect(m.rect)
	return &v
}

// SubImage returns a view of r ∩ Bounds() that pads against its own bounds.
func (m *Image) SubImage(r image.Rectangle) *Image {
	v := *m
	v.rect = r.Intersect(m.rect)
	v.frame = v.rect
	return &v
}

// Clone copies the view into a new root image with the same bounds.
func (m *Image) Clone() *Image {
	out := &Image{
		buf:   newStore(m.prec, m.rect.Dx()*m.rect.Dy()*m.bands),
		prec:  m.prec,
		bands: m.bands,
		root:  m.rect,
		frame: m.rect,
		rect:  m.rect,
	}
	for y := m.rect.Min.Y; y < m.rect.Max.Y; y++ {
		for x := m.rect.Min.X; x < m.rect.Max.X; x++ {
			si, di := m.offset(x, y, 0), out.offset(x, y, 0)
			for b := range m.bands {
				out.buf.save(di+b, m.buf.load(si+b))
			}
		}
	}
	return out
}

// Samples returns the view's samples in row-major, band-interleaved order.
func (m *Image) Samples() []float64 {
	out := make([]float64, 0, m.rect.Dx()*m.rect.Dy()*m.bands)
	for y := m.rect.Min.Y; y < m.rect.Max.Y; y++ {
		for x := m.rect.Min.X; x < m.rect.Max.X; x++ {
			i := m.offset(x, y, 0)
			for b := range m.bands {
				out = append(out, m.buf.load(i+b))
			}
		}
	}
	return out
}

// BandSamples returns one band of the view in row-major order.
func (m *Image) BandSamples(band int) []float64 {
	out := make([]float64, 0, m.rect.Dx()*m.rect.Dy())
	for y := m.rect.Min.Y; y < m.rect.Max.Y; y++ {
		for x := m.rect.Min.X; x < m.rect.Max.X; x++ {
			out = append(out, m.buf.load(m.offset(x, y, band)))
		}
	}
	return out
}

// Equal reports whether a and b have the same bounds, bands, precision and
// samples.
func Equal(a, b *Image) bool {
	if a.rect != b.rect || a.bands != b.bands || a.prec != b.prec {
		return false
	}
	for y := a.rect.Min.Y; y < a.rect.Max.Y; y++ {
		for x := a.rect.Min.X; x < a.rect.Max.X; x++ {
			ai, bi := a.offset(x, y, 0), b.offset(x, y, 0)
			for band := range a.bands {
				if a.buf.load(ai+band) != b.buf.load(bi+band) {
					return false
				}
			}
		}
	}
	return true
}
