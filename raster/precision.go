package raster

import "math"

// Precision is the storage type of every sample in an Image.
type Precision uint8

const (
	// Bit stores binary samples (0 or 1).
	Bit Precision = iota

	// Byte stores unsigned 8-bit samples in [0, 255].
	Byte

	// Float32 stores single precision samples.
	Float32

	// Float64 stores double precision samples.
	Float64

	// precisionCount is the number of precisions (for internal use).
	precisionCount
)

// PrecisionInfo contains metadata about a precision.
type PrecisionInfo struct {
	// Name is the display name.
	Name string

	// Bits is the storage size of one sample in bits.
	Bits int

	// Min and Max bound the representable sample values.
	Min, Max float64

	// IsFloat reports whether samples are stored as floating point.
	IsFloat bool
}

var precisionInfoTable = [precisionCount]PrecisionInfo{
	Bit: {
		Name: "Bit",
		Bits: 1,
		Min:  0,
		Max:  1,
	},
	Byte: {
		Name: "Byte",
		Bits: 8,
		Min:  0,
		Max:  255,
	},
	Float32: {
		Name:    "Float32",
		Bits:    32,
		Min:     -math.MaxFloat32,
		Max:     math.MaxFloat32,
		IsFloat: true,
	},
	Float64: {
		Name:    "Float64",
		Bits:    64,
		Min:     -math.MaxFloat64,
		Max:     math.MaxFloat64,
		IsFloat: true,
	},
}

// Info returns the metadata for p. Invalid precisions yield a zero value.
func (p Precision) Info() PrecisionInfo {
	if !p.IsValid() {
		return PrecisionInfo{}
	}
	return precisionInfoTable[p]
}

// IsValid reports whether p is a known precision.
func (p Precision) IsValid() bool { return p < precisionCount }

// IsFloat reports whether p stores floating point samples.
func (p Precision) IsFloat() bool { return p.Info().IsFloat }

// Range returns the representable sample range.
func (p Precision) Range() (low, high float64) {
	info := p.Info()
	return info.Min, info.Max
}

// String returns the precision name.
func (p Precision) String() string {
	if !p.IsValid() {
		return "Unknown"
	}
	return precisionInfoTable[p].Name
}
