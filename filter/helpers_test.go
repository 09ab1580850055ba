package filter

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/imaging/raster"
)

// newImage builds a w x h image at the origin with samples from fn.
func newImage(t *testing.T, w, h, bands int, p raster.Precision, fn func(x, y, b int) float64) *raster.Image {
	t.Helper()
	img, err := raster.NewSize(w, h, bands, p)
	if err != nil {
		t.Fatalf("raster.NewSize(%d, %d) error = %v", w, h, err)
	}
	for y := range h {
		for x := range w {
			for b := range bands {
				img.Set(x, y, b, fn(x, y, b))
			}
		}
	}
	return img
}

// ramp returns a one-band image with sample y*w + x.
func ramp(t *testing.T, w, h int, p raster.Precision) *raster.Image {
	t.Helper()
	return newImage(t, w, h, 1, p, func(x, y, _ int) float64 { return float64(y*w + x) })
}

// constant returns an image with every sample set to v.
func constant(t *testing.T, w, h, bands int, p raster.Precision, v float64) *raster.Image {
	t.Helper()
	return newImage(t, w, h, bands, p, func(int, int, int) float64 { return v })
}

func approx() cmp.Option {
	return cmpopts.EquateApprox(0, 1e-9)
}

func checkSamples(t *testing.T, got *raster.Image, want []float64, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got.Samples(), opts...); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func checkBounds(t *testing.T, got *raster.Image, want image.Rectangle) {
	t.Helper()
	if got.Bounds() != want {
		t.Errorf("Bounds() = %v, want %v", got.Bounds(), want)
	}
}

func checkSamplesSlice(t *testing.T, got, want []float64) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}
