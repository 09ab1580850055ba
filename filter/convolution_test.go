package filter

import (
	"errors"
	"testing"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/matrix"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

func mustKernel(t *testing.T, rows [][]float64) *matrix.Kernel[float64] {
	t.Helper()
	m, err := matrix.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	k, err := matrix.NewKernel(m)
	if err != nil {
		t.Fatalf("NewKernel() error = %v", err)
	}
	return k
}

func TestConvolutionIdentity(t *testing.T) {
	src := newImage(t, 4, 3, 3, raster.Byte, func(x, y, b int) float64 {
		return float64(x*40 + y*7 + b)
	})
	conv, err := NewConvolution(mustKernel(t, [][]float64{{1}}))
	if err != nil {
		t.Fatalf("NewConvolution() error = %v", err)
	}
	dst, err := conv.Filter(src, nil)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if !raster.Equal(src, dst) {
		t.Errorf("1x1 identity changed the image:\n got %v\nwant %v", dst.Samples(), src.Samples())
	}
	if got := conv.Tiling(); got.Strategy != imaging.Padded || got.Halo.X != 0 || got.Halo.Y != 0 {
		t.Errorf("Tiling() = %+v, want padded with zero halo", got)
	}
}

func TestSeparableEqualsFullKernel(t *testing.T) {
	row := mustKernel(t, [][]float64{{1, 2, -1}})
	col := mustKernel(t, [][]float64{{0.5}, {1}, {3}})
	full, err := matrix.Outer(col, row)
	if err != nil {
		t.Fatalf("Outer() error = %v", err)
	}

	pads := []struct {
		name string
		pad  padder.Padder
	}{
		{"zero", padder.Zero},
		{"extend", padder.Extend{}},
		{"reflect", padder.Reflect{}},
		{"wrap", padder.Wrap{}},
	}
	for _, p := range pads {
		pad := p.pad
		t.Run(p.name, func(t *testing.T) {
			src := ramp(t, 5, 5, raster.Float64)
			sep, err := NewSeparableConvolution(row, col, WithPadder(pad))
			if err != nil {
				t.Fatalf("NewSeparableConvolution() error = %v", err)
			}
			conv, err := NewConvolution(full, WithPadder(pad))
			if err != nil {
				t.Fatalf("NewConvolution() error = %v", err)
			}

			want, err := conv.Filter(src, nil)
			if err != nil {
				t.Fatalf("2-D Filter() error = %v", err)
			}
			got, err := sep.Filter(src, nil)
			if err != nil {
				t.Fatalf("separable Filter() error = %v", err)
			}
			checkSamples(t, got, want.Samples(), approx())
		})
	}
}

func TestConvolutionKnownValues(t *testing.T) {
	// Centered on the last tap, [-1 1] reads pad(x+1) and pad(x).
	m, _ := matrix.FromRows([][]float64{{-1, 1}})
	k, err := matrix.NewKernelCentered(m, 0, 1)
	if err != nil {
		t.Fatalf("NewKernelCentered() error = %v", err)
	}
	src := ramp(t, 3, 1, raster.Float64)
	conv, _ := NewConvolution(k, WithPadder(padder.Extend{}))
	dst, err := conv.Filter(src, nil)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	checkSamples(t, dst, []float64{-1, -1, 0})
}

func TestConvolutionPostProcessing(t *testing.T) {
	src := constant(t, 2, 2, 2, raster.Float64, 10)
	k := mustKernel(t, [][]float64{{-1}})

	tests := []struct {
		name string
		opts []Option
		want float64
	}{
		{"raw", nil, -10},
		{"abs", []Option{WithAbs(true)}, 10},
		{"gain bias", []Option{WithAbs(true), WithRescale(2, 1, 0, 100)}, 21},
		{"clamp", []Option{WithRescale(1, 0, -5, 5)}, -5},
		{"byte quantizes", []Option{WithPrecision(raster.Byte)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := NewConvolution(k, tt.opts...)
			if err != nil {
				t.Fatalf("NewConvolution() error = %v", err)
			}
			dst, err := conv.Filter(src, nil)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			for _, v := range dst.Samples() {
				if v != tt.want {
					t.Fatalf("sample = %v, want %v", v, tt.want)
				}
			}
		})
	}
}

func TestConvolutionPerBandAbs(t *testing.T) {
	src := constant(t, 1, 1, 3, raster.Float64, -4)
	conv, _ := NewConvolution(mustKernel(t, [][]float64{{1}}), WithAbs(false, true))
	dst, _ := conv.Filter(src, nil)
	// Band 2 reuses the last flag.
	checkSamples(t, dst, []float64{-4, 4, 4})
}

func TestBlursPreserveConstantImages(t *testing.T) {
	src := constant(t, 9, 7, 3, raster.Byte, 120)
	gauss, err := NewGaussianBlur(1.5)
	if err != nil {
		t.Fatalf("NewGaussianBlur() error = %v", err)
	}
	box, err := NewBoxBlur(2)
	if err != nil {
		t.Fatalf("NewBoxBlur() error = %v", err)
	}
	for name, op := range map[string]imaging.Op{"gaussian": gauss, "box": box} {
		t.Run(name, func(t *testing.T) {
			dst, err := op.Filter(src, nil)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if !raster.Equal(src, dst) {
				t.Errorf("blur changed a constant image: %v", dst.Samples())
			}
			if op.Tiling().Strategy != imaging.Staged || len(op.Tiling().Stages) != 2 {
				t.Errorf("Tiling() = %+v, want two stages", op.Tiling())
			}
		})
	}
}

func TestSeparableIntermediateCoversFrame(t *testing.T) {
	src := ramp(t, 6, 6, raster.Float64)
	win := src.Window(src.Bounds().Inset(2))
	blur, _ := NewBoxBlur(1, WithPrecision(raster.Float64))

	whole, _ := blur.Filter(src, nil)
	part, err := blur.Filter(win, nil)
	if err != nil {
		t.Fatalf("Filter(window) error = %v", err)
	}
	checkBounds(t, part, win.Bounds())
	checkSamples(t, part, whole.SubImage(win.Bounds()).Samples(), approx())
}

func TestConvolutionErrors(t *testing.T) {
	k := mustKernel(t, [][]float64{{1, 2, 1}})
	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"nil kernel", func() error {
			_, err := NewConvolution(nil)
			return err
		}, imaging.ErrInvalidParameter},
		{"min above max", func() error {
			_, err := NewConvolution(k, WithRescale(1, 0, 5, 1))
			return err
		}, imaging.ErrInvalidParameter},
		{"row kernel not a row", func() error {
			_, err := NewSeparableConvolution(k.Transpose(), k.Transpose())
			return err
		}, imaging.ErrDimensionMismatch},
		{"column kernel not a column", func() error {
			_, err := NewSeparableConvolution(k, k)
			return err
		}, imaging.ErrDimensionMismatch},
		{"negative radius", func() error {
			_, err := NewGaussianBlur(-1)
			return err
		}, imaging.ErrInvalidParameter},
		{"gaussian radius too large", func() error {
			_, err := NewGaussianBlur(1e300)
			return err
		}, imaging.ErrInvalidParameter},
		{"box radius too large", func() error {
			_, err := NewBoxBlur(matrix.MaxRadius + 1)
			return err
		}, imaging.ErrInvalidParameter},
		{"destination lacks bands", func() error {
			conv, _ := NewConvolution(k)
			src := constant(t, 3, 3, 3, raster.Byte, 1)
			dst := constant(t, 3, 3, 1, raster.Byte, 0)
			_, err := conv.Filter(src, dst)
			return err
		}, imaging.ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
