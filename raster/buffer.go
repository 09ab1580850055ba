package raster

// store is the sample storage behind an Image. Values cross the interface
// as float64 and are quantized on write according to the precision.
type store interface {
	load(i int) float64
	save(i int, v float64)
	len() int
}

// bitStore keeps one binary sample per byte.
type bitStore []uint8

func (s bitStore) load(i int) float64 { return float64(s[i]) }

func (s bitStore) save(i int, v float64) {
	if v >= 0.5 {
		s[i] = 1
	} else {
		s[i] = 0
	}
}

func (s bitStore) len() int { return len(s) }

// byteStore clamps to [0, 255] and rounds half up.
type byteStore []uint8

func (s byteStore) load(i int) float64 { return float64(s[i]) }

func (s byteStore) save(i int, v float64) {
	s[i] = quantizeByte(v)
}

func (s byteStore) len() int { return len(s) }

func quantizeByte(v float64) uint8 {
	switch {
	case v >= 255:
		return 255
	case v > 0:
		return uint8(v + 0.5)
	default:
		// Negative values and NaN.
		return 0
	}
}

// floatStore serves both float precisions.
type floatStore[T float32 | float64] []T

func (s floatStore[T]) load(i int) float64 { return float64(s[i]) }

func (s floatStore[T]) save(i int, v float64) { s[i] = T(v) }

func (s floatStore[T]) len() int { return len(s) }

func newStore(p Precision, n int) store {
	switch p {
	case Bit:
		return make(bitStore, n)
	case Byte:
		return make(byteStore, n)
	case Float32:
		return make(floatStore[float32], n)
	default:
		return make(floatStore[float64], n)
	}
}
