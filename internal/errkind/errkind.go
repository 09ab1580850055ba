// Package errkind defines the error kinds shared by every imaging package.
//
// Packages wrap these sentinels with context using fmt.Errorf and %w, so
// callers classify failures with errors.Is against the root package's
// re-exported values.
package errkind

import "errors"

var (
	// ErrDimensionMismatch reports incompatible source, destination,
	// kernel or mask shapes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsupportedPrecision reports a precision or band-count combination
	// an operation cannot read or produce.
	ErrUnsupportedPrecision = errors.New("unsupported precision")

	// ErrInvalidParameter reports out-of-range configuration.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInterrupted reports cancellation observed while waiting for tiles.
	ErrInterrupted = errors.New("interrupted")
)
