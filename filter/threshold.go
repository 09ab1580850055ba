package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

// Threshold binarizes one band: samples above the threshold become 0 and
// the others 1, in a one-band Bit image.
type Threshold struct {
	band      int
	threshold float64
}

// NewThreshold returns a global threshold on band.
func NewThreshold(band int, threshold float64) (*Threshold, error) {
	if band < 0 {
		return nil, fmt.Errorf("filter: band %d: %w", band, imaging.ErrInvalidParameter)
	}
	if math.IsNaN(threshold) {
		return nil, fmt.Errorf("filter: NaN threshold: %w", imaging.ErrInvalidParameter)
	}
	return &Threshold{band: band, threshold: threshold}, nil
}

// Value returns the threshold.
func (t *Threshold) Value() float64 { return t.threshold }

// Tiling implements imaging.Op.
func (t *Threshold) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Simple}
}

// CreateDestination implements imaging.Op.
func (t *Threshold) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if err := checkSourceBand(src, t.band); err != nil {
		return nil, err
	}
	return raster.New(src.Bounds(), 1, raster.Bit)
}

// Filter implements imaging.Op.
func (t *Threshold) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(t, src, dst)
	if err != nil {
		return nil, err
	}
	if err := checkSourceBand(src, t.band); err != nil {
		return nil, err
	}
	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := 1.0
			if src.At(x, y, t.band) > t.threshold {
				v = 0
			}
			dst.Set(x, y, 0, v)
		}
	}
	return dst, nil
}

// ThresholdMethod selects how AutoThreshold derives its threshold.
type ThresholdMethod uint8

const (
	// MeanThreshold uses the mean sample value.
	MeanThreshold ThresholdMethod = iota

	// OtsuThreshold maximizes the between-class variance.
	OtsuThreshold

	// MomentsThreshold preserves the first three moments.
	MomentsThreshold
)

// String returns the method name.
func (m ThresholdMethod) String() string {
	switch m {
	case MeanThreshold:
		return "Mean"
	case OtsuThreshold:
		return "Otsu"
	case MomentsThreshold:
		return "Moments"
	default:
		return "Unknown"
	}
}

// AutoThreshold computes a threshold from the histogram of the whole source
// band, then binarizes like Threshold. It needs the complete image and is
// never tiled.
type AutoThreshold struct {
	band   int
	method ThresholdMethod
}

// NewAutoThreshold returns an automatic threshold on band.
func NewAutoThreshold(band int, method ThresholdMethod) (*AutoThreshold, error) {
	if band < 0 {
		return nil, fmt.Errorf("filter: band %d: %w", band, imaging.ErrInvalidParameter)
	}
	if method > MomentsThreshold {
		return nil, fmt.Errorf("filter: threshold method %d: %w", method, imaging.ErrInvalidParameter)
	}
	return &AutoThreshold{band: band, method: method}, nil
}

// Tiling implements imaging.Op.
func (a *AutoThreshold) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.None}
}

// CreateDestination implements imaging.Op.
func (a *AutoThreshold) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if err := checkSourceBand(src, a.band); err != nil {
		return nil, err
	}
	return raster.New(src.Bounds(), 1, raster.Bit)
}

// Compute returns the threshold the method picks for src.
func (a *AutoThreshold) Compute(src *raster.Image) (int, error) {
	h, err := NewHistogram(src, a.band)
	if err != nil {
		return 0, err
	}
	switch a.method {
	case OtsuThreshold:
		return h.Otsu(), nil
	case MomentsThreshold:
		return h.Moments(), nil
	default:
		return h.Mean(), nil
	}
}

// Filter implements imaging.Op.
func (a *AutoThreshold) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(a, src, dst)
	if err != nil {
		return nil, err
	}
	t, err := a.Compute(src)
	if err != nil {
		return nil, err
	}
	return (&Threshold{band: a.band, threshold: float64(t)}).Filter(src, dst)
}
