package filter

import (
	"fmt"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/colormodel"
	"github.com/gogpu/imaging/raster"
)

// BandExtract copies a single band into a one-band image of the same
// precision.
type BandExtract struct {
	band int
}

// NewBandExtract returns an extractor for band.
func NewBandExtract(band int) (*BandExtract, error) {
	if band < 0 {
		return nil, fmt.Errorf("filter: band %d: %w", band, imaging.ErrInvalidParameter)
	}
	return &BandExtract{band: band}, nil
}

// Tiling implements imaging.Op.
func (e *BandExtract) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Simple}
}

// CreateDestination implements imaging.Op.
func (e *BandExtract) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if err := checkSourceBand(src, e.band); err != nil {
		return nil, err
	}
	return raster.New(src.Bounds(), 1, src.Precision())
}

// Filter implements imaging.Op.
func (e *BandExtract) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(e, src, dst)
	if err != nil {
		return nil, err
	}
	if err := checkSourceBand(src, e.band); err != nil {
		return nil, err
	}
	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, 0, src.At(x, y, e.band))
		}
	}
	return dst, nil
}

// BandVisualize renders one band of an image in the given color model as a
// three-band Byte RGB image. The other bands of the model are replaced by
// neutral values.
type BandVisualize struct {
	model colormodel.Model
	band  int
}

// NewBandVisualize returns a visualizer for band of model.
func NewBandVisualize(model colormodel.Model, band int) (*BandVisualize, error) {
	if !model.IsValid() {
		return nil, fmt.Errorf("filter: color model %d: %w", model, imaging.ErrInvalidParameter)
	}
	if band < 0 || band >= model.Bands() {
		return nil, fmt.Errorf("filter: band %d of %v: %w", band, model, imaging.ErrInvalidParameter)
	}
	return &BandVisualize{model: model, band: band}, nil
}

// Tiling implements imaging.Op.
func (v *BandVisualize) Tiling() imaging.Tiling {
	return imaging.Tiling{Strategy: imaging.Simple}
}

// CreateDestination implements imaging.Op.
func (v *BandVisualize) CreateDestination(src *raster.Image) (*raster.Image, error) {
	if err := checkSourceBand(src, v.band); err != nil {
		return nil, err
	}
	return raster.New(src.Bounds(), 3, raster.Byte)
}

// Filter implements imaging.Op.
func (v *BandVisualize) Filter(src, dst *raster.Image) (*raster.Image, error) {
	dst, err := imaging.EnsureDestination(v, src, dst)
	if err != nil {
		return nil, err
	}
	if err := checkSourceBand(src, v.band); err != nil {
		return nil, err
	}
	if err := checkBands(dst, 3); err != nil {
		return nil, err
	}
	rgb := make([]float64, 3)
	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v.model.VisualizeBand(v.band, src.At(x, y, v.band), rgb)
			dst.SetPixel(x, y, rgb)
		}
	}
	return dst, nil
}

func checkSourceBand(src *raster.Image, band int) error {
	if src == nil {
		return fmt.Errorf("filter: nil source: %w", imaging.ErrInvalidParameter)
	}
	if band >= src.Bands() {
		return fmt.Errorf("filter: band %d of %d-band source: %w", band, src.Bands(), imaging.ErrDimensionMismatch)
	}
	return nil
}
