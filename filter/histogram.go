package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/imaging"
	"github.com/gogpu/imaging/raster"
)

// Bins is the number of histogram bins.
const Bins = 256

// Histogram counts the samples of one band in 256 bins. Samples are rounded
// and clamped to [0, 255] before counting.
type Histogram struct {
	counts [Bins]int
	total  int
}

// NewHistogram counts band of every pixel in img's bounds.
func NewHistogram(img *raster.Image, band int) (*Histogram, error) {
	if band < 0 {
		return nil, fmt.Errorf("filter: band %d: %w", band, imaging.ErrInvalidParameter)
	}
	if err := checkSourceBand(img, band); err != nil {
		return nil, err
	}
	h := &Histogram{}
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			h.add(img.At(x, y, band))
		}
	}
	return h, nil
}

func (h *Histogram) add(v float64) {
	i := 0
	if !math.IsNaN(v) {
		i = int(math.Min(math.Max(math.Floor(v+0.5), 0), Bins-1))
	}
	h.counts[i]++
	h.total++
}

// Count returns the number of samples in bin i.
func (h *Histogram) Count(i int) int { return h.counts[i] }

// Total returns the number of counted samples.
func (h *Histogram) Total() int { return h.total }

// Mean returns floor of the mean sample value.
func (h *Histogram) Mean() int {
	if h.total == 0 {
		return 0
	}
	var sum float64
	for i, n := range h.counts {
		sum += float64(i * n)
	}
	return int(math.Floor(sum / float64(h.total)))
}

// Otsu returns the threshold maximizing the between-class variance
// (Otsu, 1979).
func (h *Histogram) Otsu() int {
	var sum float64
	for i, n := range h.counts {
		sum += float64(i * n)
	}

	var (
		threshold int
		vMax      float64
		wB        int
		sumB      float64
	)
	for i, n := range h.counts {
		wB += n
		if wB == 0 {
			continue
		}
		wF := h.total - wB
		if wF == 0 {
			break
		}
		sumB += float64(i * n)

		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		v := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if v > vMax {
			vMax = v
			threshold = i
		}
	}
	return threshold
}

// Moments returns the moment-preserving threshold (Tsai, 1985), or -1 when
// the histogram has fewer than two distinct levels.
func (h *Histogram) Moments() int {
	if h.total == 0 {
		return -1
	}
	var hist [Bins]float64
	for i, n := range h.counts {
		hist[i] = float64(n) / float64(h.total)
	}

	m0, m1, m2, m3 := 1.0, 0.0, 0.0, 0.0
	for i, p := range hist {
		fi := float64(i)
		m1 += fi * p
		m2 += fi * fi * p
		m3 += fi * fi * fi * p
	}

	cd := m0*m2 - m1*m1
	if cd == 0 {
		return -1
	}
	c0 := (-m2*m2 + m1*m3) / cd
	c1 := (-m0*m3 + m2*m1) / cd
	z := math.Sqrt(c1*c1 - 4*c0)
	z0 := 0.5 * (-c1 - z)
	z1 := 0.5 * (-c1 + z)
	p0 := (z1 - m1) / (z1 - z0)

	var sum float64
	for i, p := range hist {
		sum += p
		if sum > p0 {
			return i
		}
	}
	return -1
}
