package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

// halves returns a 4x4 image whose left half is lowV and right half highV.
func halves(t *testing.T, lowV, highV float64) *raster.Image {
	t.Helper()
	return newImage(t, 4, 4, 1, raster.Byte, func(x, _, _ int) float64 {
		if x < 2 {
			return lowV
		}
		return highV
	})
}

func TestThreshold(t *testing.T) {
	src := newImage(t, 4, 1, 1, raster.Byte, func(x, _, _ int) float64 {
		return []float64{0, 127, 128, 255}[x]
	})
	op, err := NewThreshold(0, 127)
	if err != nil {
		t.Fatalf("NewThreshold() error = %v", err)
	}
	dst, err := op.Filter(src, nil)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if dst.Bands() != 1 || dst.Precision() != raster.Bit {
		t.Errorf("destination = %d bands %v, want 1 band Bit", dst.Bands(), dst.Precision())
	}
	checkSamples(t, dst, []float64{1, 1, 0, 0})
}

func TestHistogramBins(t *testing.T) {
	src := newImage(t, 5, 1, 1, raster.Float64, func(x, _, _ int) float64 {
		return []float64{-3, 0.4, 0.5, 254.6, math.NaN()}[x]
	})
	h, err := NewHistogram(src, 0)
	if err != nil {
		t.Fatalf("NewHistogram() error = %v", err)
	}
	tests := []struct {
		bin, want int
	}{
		{0, 3},
		{1, 1},
		{255, 1},
		{128, 0},
	}
	for _, tt := range tests {
		if got := h.Count(tt.bin); got != tt.want {
			t.Errorf("Count(%d) = %d, want %d", tt.bin, got, tt.want)
		}
	}
	if h.Total() != 5 {
		t.Errorf("Total() = %d, want 5", h.Total())
	}
}

func TestAutoThreshold(t *testing.T) {
	src := halves(t, 10, 200)

	tests := []struct {
		method  ThresholdMethod
		low, hi int
	}{
		{MeanThreshold, 105, 105},
		{OtsuThreshold, 10, 10},
		{MomentsThreshold, 10, 200},
	}
	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			op, err := NewAutoThreshold(0, tt.method)
			if err != nil {
				t.Fatalf("NewAutoThreshold() error = %v", err)
			}
			got, err := op.Compute(src)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got < tt.low || got > tt.hi {
				t.Errorf("Compute() = %d, want within [%d, %d]", got, tt.low, tt.hi)
			}
			if op.Tiling().Strategy != imaging.None {
				t.Errorf("Tiling().Strategy = %v, want none", op.Tiling().Strategy)
			}
		})
	}
}

func TestAutoThresholdSeparatesHalves(t *testing.T) {
	op, _ := NewAutoThreshold(0, OtsuThreshold)
	dst, err := op.Filter(halves(t, 10, 200), nil)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	for y := range 4 {
		for x := range 4 {
			want := 1.0
			if x >= 2 {
				want = 0
			}
			if got := dst.At(x, y, 0); got != want {
				t.Errorf("At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestMomentsDegenerate(t *testing.T) {
	h, _ := NewHistogram(constant(t, 3, 3, 1, raster.Byte, 42), 0)
	if got := h.Moments(); got != -1 {
		t.Errorf("Moments() of a flat image = %d, want -1", got)
	}
}

func TestThresholdErrors(t *testing.T) {
	if _, err := NewThreshold(-1, 0); !errors.Is(err, imaging.ErrInvalidParameter) {
		t.Errorf("NewThreshold(-1) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := NewAutoThreshold(0, ThresholdMethod(7)); !errors.Is(err, imaging.ErrInvalidParameter) {
		t.Errorf("NewAutoThreshold(method 7) error = %v, want ErrInvalidParameter", err)
	}
	op, _ := NewThreshold(1, 0)
	if _, err := op.Filter(constant(t, 2, 2, 1, raster.Byte, 0), nil); !errors.Is(err, imaging.ErrDimensionMismatch) {
		t.Errorf("Filter(band 1 of 1) error = %v, want ErrDimensionMismatch", err)
	}
}
