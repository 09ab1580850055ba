// Package filter provides the concrete raster operations.
//
// Every filter implements imaging.Op and declares its tiling capability:
//
//	Convolution, Rank                        Padded (halo = kernel or mask reach)
//	SeparableConvolution                     Staged (horizontal, then vertical)
//	GeometricTransform, Binary, Multi        Mapped
//	Rescale, BandExtract, ColorConvert,
//	BandVisualize, Invert, Threshold         Simple
//	AutoThreshold                            None
//
// Constructors validate their parameters and fail with
// imaging.ErrInvalidParameter or imaging.ErrDimensionMismatch. Filters are
// immutable after construction and safe for concurrent use.
//
// Per-band parameters (gain, bias, clamp bounds, abs flags, ranges) may be
// shorter than the band count: bands beyond a slice reuse its last entry.
package filter
