package matrix

import (
	"math"

	"github.com/gogpu/imaging/internal/lru"
)

// MaxRadius bounds the radius of generated blur kernels. A Gaussian of this
// radius has 6001 taps.
const MaxRadius = 1000

// Gaussian returns a normalized 1 x n Gaussian row vector with sigma = radius.
//
// The size is 2*ceil(3*radius)+1, which covers three standard deviations.
// A radius <= 0 or NaN yields the identity kernel [1]; radii above MaxRadius
// are clamped to it.
func Gaussian(radius float64) *Kernel[float64] {
	if !(radius > 0) {
		return identityRow()
	}
	radius = min(radius, MaxRadius)

	halfSize := int(math.Ceil(radius * 3))
	size := halfSize*2 + 1
	values := make([]float64, size)

	twoSigmaSq := 2 * radius * radius
	var sum float64
	for i := range size {
		x := float64(i - halfSize)
		values[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += values[i]
	}
	for i := range values {
		values[i] /= sum
	}

	return &Kernel[float64]{
		m:         &Matrix[float64]{rows: 1, cols: size, data: values},
		centerCol: halfSize,
	}
}

// Box returns a 1 x (2*radius+1) row vector whose values are all 1/size.
// Radii above MaxRadius are clamped to it.
func Box(radius int) *Kernel[float64] {
	if radius <= 0 {
		return identityRow()
	}
	radius = min(radius, MaxRadius)
	size := radius*2 + 1
	values := make([]float64, size)
	for i := range values {
		values[i] = 1 / float64(size)
	}
	return &Kernel[float64]{
		m:         &Matrix[float64]{rows: 1, cols: size, data: values},
		centerCol: radius,
	}
}

func identityRow() *Kernel[float64] {
	return &Kernel[float64]{m: &Matrix[float64]{rows: 1, cols: 1, data: []float64{1}}}
}

// gaussianCache holds Gaussian kernels keyed by radius quantized to 0.01.
var gaussianCache = lru.New[int, *Kernel[float64]](64)

// CachedGaussian returns a shared Gaussian kernel for radius rounded to two
// decimals. Kernels are immutable, so callers may keep the result.
func CachedGaussian(radius float64) *Kernel[float64] {
	if !(radius > 0) {
		return identityRow()
	}
	key := int(math.Round(min(radius, MaxRadius) * 100))
	return gaussianCache.GetOrCreate(key, func() *Kernel[float64] {
		return Gaussian(float64(key) / 100)
	})
}
