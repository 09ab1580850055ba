// Package colormodel converts pixels between a closed set of color spaces.
//
// RGB (samples in [0, 255]) is the hub: every model converts to and from
// RGB, and a conversion between two other models composes through it unless
// a direct shortcut is registered (XYZ and Lab convert directly).
//
// Each model lives in its own file and registers a definition in the model
// table; conversions dispatch by table lookup on the Model tag.
package colormodel

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/gogpu/imaging/internal/errkind"
)

// Model identifies a color space.
type Model uint8

const (
	// RGB is red, green, blue in [0, 255].
	RGB Model = iota
	// RGBA is RGB plus an alpha band in [0, 255].
	RGBA
	// Gray is a single luminance band in [0, 255].
	Gray
	// CMY is cyan, magenta, yellow in [0, 255].
	CMY
	// HSV is hue in degrees, saturation and value in [0, 1].
	HSV
	// YUV is BT.601 luma in [0, 1] with chroma U and V.
	YUV
	// YCbCr is BT.601 studio-swing luma and chroma.
	YCbCr
	// XYZ is CIE 1931 XYZ relative to D65.
	XYZ
	// Lab is CIE L*a*b* relative to D65.
	Lab

	modelCount
)

// Band describes one channel of a model.
type Band struct {
	Name     string
	Min, Max float64
}

// convertFunc converts one pixel. src and dst never alias.
type convertFunc func(src, dst []float64)

// visualizeFunc renders a single band as an RGB triple.
type visualizeFunc func(band int, v float64, rgb []float64)

type definition struct {
	name      string
	bands     []Band
	byteCoded bool
	toRGB     convertFunc
	fromRGB   convertFunc
	visualize visualizeFunc
}

var (
	models    [modelCount]*definition
	shortcuts = map[[2]Model]convertFunc{}
)

func register(m Model, d *definition) {
	models[m] = d
}

func registerShortcut(from, to Model, fn convertFunc) {
	shortcuts[[2]Model{from, to}] = fn
}

// Models returns every model in tag order.
func Models() []Model {
	out := make([]Model, 0, modelCount)
	for m := range modelCount {
		out = append(out, m)
	}
	return out
}

// IsValid reports whether m is a known model.
func (m Model) IsValid() bool { return m < modelCount && models[m] != nil }

// String returns the model name.
func (m Model) String() string {
	if !m.IsValid() {
		return "Unknown"
	}
	return models[m].name
}

// Bands returns the number of bands.
func (m Model) Bands() int { return len(models[m].bands) }

// Band returns the description of band i.
func (m Model) Band(i int) Band { return models[m].bands[i] }

// Range returns the nominal range of band i.
func (m Model) Range(i int) (minV, maxV float64) {
	b := models[m].bands[i]
	return b.Min, b.Max
}

// IsByteCoded reports whether samples of m are 8-bit codes that survive Byte
// storage. Models with fractional samples (HSV, YUV, XYZ, Lab) need a float
// raster.
func (m Model) IsByteCoded() bool { return models[m].byteCoded }

// ToRGB converts one pixel of m into RGB. dst must hold three samples.
func (m Model) ToRGB(src, dst []float64) { models[m].toRGB(src, dst) }

// FromRGB converts one RGB pixel into m. dst must hold Bands() samples.
func (m Model) FromRGB(rgb, dst []float64) { models[m].fromRGB(rgb, dst) }

// VisualizeBand renders band i with value v as an RGB triple, filling the
// other bands with neutral values for m.
func (m Model) VisualizeBand(i int, v float64, rgb []float64) {
	models[m].visualize(i, v, rgb)
}

// Convert converts one pixel from one model to another. src must hold
// from.Bands() samples and dst to.Bands() samples.
func Convert(from, to Model, src, dst []float64) {
	if from == to {
		copy(dst, src[:from.Bands()])
		return
	}
	if fn, ok := shortcuts[[2]Model{from, to}]; ok {
		fn(src, dst)
		return
	}
	var rgb [3]float64
	from.ToRGB(src, rgb[:])
	to.FromRGB(rgb[:], dst)
}

// Parse returns the model with the given case-insensitive name.
func Parse(name string) (Model, error) {
	folded := cases.Fold().String(name)
	for m := range modelCount {
		if models[m] != nil && cases.Fold().String(models[m].name) == folded {
			return m, nil
		}
	}
	return 0, fmt.Errorf("colormodel: unknown model %q: %w", name, errkind.ErrInvalidParameter)
}

// neutralVisualizer substitutes v into a copy of neutral and converts the
// result with toRGB.
func neutralVisualizer(neutral []float64, toRGB convertFunc) visualizeFunc {
	return func(band int, v float64, rgb []float64) {
		px := make([]float64, len(neutral))
		copy(px, neutral)
		px[band] = v
		toRGB(px, rgb)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
