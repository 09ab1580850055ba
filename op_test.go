package imaging

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/imaging/raster"
)

func sized(t *testing.T, r image.Rectangle, bands int, p raster.Precision) *raster.Image {
	t.Helper()
	img, err := raster.New(r, bands, p)
	if err != nil {
		t.Fatalf("raster.New(%v) error = %v", r, err)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			for b := range bands {
				img.Set(x, y, b, float64((x*7+y*3+b)%256))
			}
		}
	}
	return img
}

func TestStrategyString(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{None, "none"},
		{Simple, "simple"},
		{Padded, "padded"},
		{Mapped, "mapped"},
		{Staged, "staged"},
		{Strategy(9), "Strategy(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Strategy(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestNullOpCopies(t *testing.T) {
	src := sized(t, image.Rect(2, 3, 9, 8), 3, raster.Byte)
	dst, err := NullOp{}.Filter(src, nil)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if !raster.Equal(src, dst) {
		t.Error("NullOp did not copy the source")
	}
	if dst.Bounds() != src.Bounds() || dst.Precision() != raster.Byte {
		t.Errorf("destination = %v %v, want %v Byte", dst.Bounds(), dst.Precision(), src.Bounds())
	}
}

func TestNullOpPartialOverlap(t *testing.T) {
	src := sized(t, image.Rect(0, 0, 4, 4), 2, raster.Byte)
	dst := sized(t, image.Rect(2, 2, 6, 6), 1, raster.Float32)
	before := dst.At(5, 5, 0)
	if _, err := (NullOp{}).Filter(src, dst); err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if got, want := dst.At(3, 3, 0), src.At(3, 3, 0); got != want {
		t.Errorf("overlap sample = %v, want %v", got, want)
	}
	if got := dst.At(5, 5, 0); got != before {
		t.Errorf("sample outside the source changed: %v, want %v", got, before)
	}
}

func TestEnsureDestination(t *testing.T) {
	if _, err := EnsureDestination(NullOp{}, nil, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("EnsureDestination(nil src) error = %v, want ErrInvalidParameter", err)
	}
	src := sized(t, image.Rect(0, 0, 2, 2), 1, raster.Byte)
	dst := sized(t, image.Rect(0, 0, 1, 1), 1, raster.Bit)
	got, err := EnsureDestination(NullOp{}, src, dst)
	if err != nil || got != dst {
		t.Errorf("EnsureDestination(src, dst) = %p, %v; want %p, nil", got, err, dst)
	}
}

func TestChain(t *testing.T) {
	src := sized(t, image.Rect(0, 0, 5, 5), 1, raster.Byte)
	c, err := NewChain(NullOp{}, NullOp{}, NullOp{})
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	tiling := c.Tiling()
	if tiling.Strategy != Staged || len(tiling.Stages) != 3 {
		t.Errorf("Tiling() = %+v, want three stages", tiling)
	}
	dst, err := c.Filter(src, nil)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if !raster.Equal(src, dst) {
		t.Error("chain of copies changed the image")
	}

	for _, ops := range [][]Op{nil, {NullOp{}, nil}} {
		if _, err := NewChain(ops...); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("NewChain(%v) error = %v, want ErrInvalidParameter", ops, err)
		}
	}
}

func TestNewConcurrentErrors(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		opts []ConcurrentOption
	}{
		{"nil op", nil, nil},
		{"zero width", NullOp{}, []ConcurrentOption{WithTileSize(0, 8)}},
		{"negative height", NullOp{}, []ConcurrentOption{WithTileSize(8, -1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConcurrent(tt.op, tt.opts...); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("NewConcurrent() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestConcurrentStagedWithoutStages(t *testing.T) {
	c, _ := NewConcurrent(stagedOp{})
	src := sized(t, image.Rect(0, 0, 2, 2), 1, raster.Byte)
	if _, err := c.Filter(src, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Filter() error = %v, want ErrInvalidParameter", err)
	}
}

type stagedOp struct{ NullOp }

func (stagedOp) Tiling() Tiling { return Tiling{Strategy: Staged} }
