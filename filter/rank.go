package filter

import (
	"fmt"
	"slices"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/internal/parallel"
	"github.com/gogpu/imaging/matrix"
	"github.com/gogpu/imaging/padder"
	"github.com/gogpu/imaging/raster"
)

// RankKind selects the order statistic of a rank filter.
type RankKind uint8

const (
	// Min picks the smallest sample of the neighborhood (erosion).
	Min RankKind = iota

	// Median picks the sample at index cardinality/2.
	Median

	// Max picks the largest sample of the neighborhood (dilation).
	Max
)

// String returns the kind name.
func (k RankKind) String() string {
	switch k {
	case Min:
		return "Min"
	case Median:
		return "Median"
	case Max:
		return "Max"
	default:
		return "Unknown"
	}
}

// scratch holds per-tile neighborhood buffers of rank filters.
var scratch = parallel.NewSamplePool()

// Rank replaces every sample with an order statistic of the samples under
// the mask's set cells. Reads outside the frame go through the padder
// (default: extend).
type Rank struct {
	imaging.NullOp

	mask  *matrix.Mask
	index int
	pad   padder.Padder
	opts  options
}

// NewRank returns a min, median or max filter over mask.
func NewRank(kind RankKind, mask *matrix.Mask, opts ...Option) (*Rank, error) {
	if mask == nil || mask.Cardinality() == 0 {
		return nil, fmt.Errorf("filter: rank mask has no set cells: %w", imaging.ErrInvalidParameter)
	}
	n := mask.Cardinality()
	var index int
	switch kind {
	case Min:
		index = 0
	case Median:
		index = n / 2
	case Max:
		index = n - 1
	default:
		return nil, fmt.Errorf("filter: rank kind %d: %w", kind, imaging.ErrInvalidParameter)
	}
	return NewRankIndex(index, mask, opts...)
}

// NewRankIndex returns a rank filter picking the index-th smallest sample,
// 0 <= index < mask.Cardinality().
func NewRankIndex(index int, mask *matrix.Mask, opts ...Option) (*Rank, error) {
	if mask == nil || mask.Cardinality() == 0 {
		return nil, fmt.Errorf("filter: rank mask has no set cells: %w", imaging.ErrInvalidParameter)
	}
	if index < 0 || index >= mask.Cardinality() {
		return nil, fmt.Errorf("filter: rank index %d of %d: %w", index, mask.Cardinality(), imaging.ErrInvalidParameter)
	}
	o := applyOptions(opts, defaultOptions())
	if _, err := destinationPrecision(o, raster.Byte); err != nil {
		return nil, err
	}
	pad := o.padder
	if pad == nil {
		pad = padder.Extend{}
	}
	return &Rank{mask: mask, index: index, pad: pad, opts: o}, nil
}

// Index returns the picked order statistic.
func (r *Rank) Index() int { return r.index }

// Tiling implements imaging.Op.
func (r *Rank) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Padded, Halo: r.mask.Halo()}
}

// CreateDestination implements imaging.Op.
func (r *Rank) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("filter: nil source: %w", imaging.ErrInvalidParameter)
	}
	if !r.opts.hasPrec {
		return r.NullOp.CreateDestination(src)
	}
	return raster.New(src.Bounds(), src.Bands(), r.opts.precision)
}

// Filter implements imaging.Op.
func (r *Rank) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(r, src, dst)
	if err != nil {
		return nil, err
	}
	if err := checkBands(dst, src.Bands()); err != nil {
		return nil, err
	}

	offsets := r.mask.Offsets()
	buf := scratch.Get(len(offsets))
	defer scratch.Put(buf)

	bounds := dst.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			for b := range src.Bands() {
				for i, off := range offsets {
					buf[i] = r.pad.Sample(src, x+off.X, y+off.Y, b)
				}
				slices.Sort(buf)
				dst.Set(x, y, b, buf[r.index])
			}
		}
	}
	return dst, nil
}
