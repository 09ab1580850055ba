package filter

import (
	"errors"
	"testing"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/matrix"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

func TestRank3x3(t *testing.T) {
	// 5x5 ramp, samples 0..24, extended at the edges.
	mask, err := matrix.FullMask(3, 3)
	if err != nil {
		t.Fatalf("FullMask() error = %v", err)
	}

	tests := []struct {
		kind         RankKind
		center, edge float64
	}{
		{Min, 6, 0},
		{Median, 12, 1},
		{Max, 18, 6},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			op, err := NewRank(tt.kind, mask)
			if err != nil {
				t.Fatalf("NewRank() error = %v", err)
			}
			dst, err := op.Filter(ramp(t, 5, 5, raster.Byte), nil)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if got := dst.At(2, 2, 0); got != tt.center {
				t.Errorf("At(2, 2) = %v, want %v", got, tt.center)
			}
			if got := dst.At(0, 0, 0); got != tt.edge {
				t.Errorf("At(0, 0) = %v, want %v", got, tt.edge)
			}
		})
	}
}

func TestRankMedianRemovesImpulse(t *testing.T) {
	src := constant(t, 5, 5, 1, raster.Byte, 50)
	src.Set(2, 2, 0, 255)
	mask, _ := matrix.FullMask(3, 3)
	op, _ := NewRank(Median, mask, WithPadder(padder.Reflect{}))
	dst, err := op.Filter(src, nil)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	for _, v := range dst.Samples() {
		if v != 50 {
			t.Fatalf("median output contains %v, want only 50", v)
		}
	}
}

func TestRankCrossMask(t *testing.T) {
	mask, err := matrix.NewMask([][]bool{
		{false, true, false},
		{true, true, true},
		{false, true, false},
	})
	if err != nil {
		t.Fatalf("NewMask() error = %v", err)
	}
	op, err := NewRank(Max, mask, WithPadder(padder.Zero))
	if err != nil {
		t.Fatalf("NewRank() error = %v", err)
	}
	if op.Index() != 4 {
		t.Errorf("Index() = %d, want 4", op.Index())
	}
	if h := op.Tiling().Halo; h.X != 1 || h.Y != 1 {
		t.Errorf("Tiling().Halo = %v, want (1,1)", h)
	}
	dst, _ := op.Filter(ramp(t, 5, 5, raster.Byte), nil)
	// Corners of the 3x3 window are excluded: max at (1,1) is (1,2) = 11.
	if got := dst.At(1, 1, 0); got != 11 {
		t.Errorf("At(1, 1) = %v, want 11", got)
	}
}

func TestRankIndexErrors(t *testing.T) {
	mask, _ := matrix.FullMask(3, 3)
	for _, i := range []int{-1, 9} {
		if _, err := NewRankIndex(i, mask); !errors.Is(err, imaging.ErrInvalidParameter) {
			t.Errorf("NewRankIndex(%d) error = %v, want ErrInvalidParameter", i, err)
		}
	}
	if _, err := NewRank(Median, nil); !errors.Is(err, imaging.ErrInvalidParameter) {
		t.Errorf("NewRank(nil mask) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := NewRank(RankKind(9), mask); !errors.Is(err, imaging.ErrInvalidParameter) {
		t.Errorf("NewRank(kind 9) error = %v, want ErrInvalidParameter", err)
	}
}

func TestRankNilSource(t *testing.T) {
	mask, _ := matrix.FullMask(3, 3)
	for _, opts := range [][]Option{nil, {WithPrecision(raster.Float32)}} {
		op, err := NewRank(Min, mask, opts...)
		if err != nil {
			t.Fatalf("NewRank() error = %v", err)
		}
		if _, err := op.CreateDestination(nil); !errors.Is(err, imaging.ErrInvalidParameter) {
			t.Errorf("CreateDestination(nil) error = %v, want ErrInvalidParameter", err)
		}
		if _, err := op.Filter(nil, nil); !errors.Is(err, imaging.ErrInvalidParameter) {
			t.Errorf("Filter(nil, nil) error = %v, want ErrInvalidParameter", err)
		}
	}
}
