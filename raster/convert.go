package raster

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/imaging/internal/errkind"
)

// FromImage copies an in-memory image into a Byte raster with the same
// bounds. Gray images produce one band, opaque images three (RGB) and
// everything else four (non-premultiplied RGBA).
func FromImage(img image.Image) (*Image, error) {
	r := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		m, err := New(r, 1, Byte)
		if err != nil {
			return nil, err
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				m.Set(x, y, 0, float64(g.GrayAt(x, y).Y))
			}
		}
		return m, nil
	}

	nrgba := image.NewNRGBA(r)
	xdraw.Draw(nrgba, r, img, r.Min, xdraw.Src)

	bands := 4
	if nrgba.Opaque() {
		bands = 3
	}
	m, err := New(r, bands, Byte)
	if err != nil {
		return nil, err
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := nrgba.NRGBAAt(x, y)
			m.SetPixel(x, y, []float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)})
		}
	}
	return m, nil
}

// ToImage converts the view to an in-memory image. One band yields
// *image.Gray, three or four bands yield *image.NRGBA. Samples are clamped
// and rounded to bytes; Bit samples map to 0 and 255.
func (m *Image) ToImage() (xdraw.Image, error) {
	r := m.rect
	scale := 1.0
	if m.prec == Bit {
		scale = 255
	}

	switch m.bands {
	case 1:
		g := image.NewGray(r)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				g.SetGray(x, y, color.Gray{Y: quantizeByte(m.At(x, y, 0) * scale)})
			}
		}
		return g, nil
	case 3, 4:
		out := image.NewNRGBA(r)
		px := make([]float64, m.bands)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				px = m.Pixel(x, y, px)
				c := color.NRGBA{
					R: quantizeByte(px[0] * scale),
					G: quantizeByte(px[1] * scale),
					B: quantizeByte(px[2] * scale),
					A: 255,
				}
				if m.bands == 4 {
					c.A = quantizeByte(px[3] * scale)
				}
				out.SetNRGBA(x, y, c)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("raster: no image type for %d bands: %w", m.bands, errkind.ErrUnsupportedPrecision)
	}
}
