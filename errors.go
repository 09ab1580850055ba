package imaging

import (
	"github.com/gogpu/imaging/internal/errkind"
	"github.com/gogpu/imaging/internal/parallel"
)

// Error kinds. Every error returned by this module wraps one of them.
var (
	// ErrDimensionMismatch reports incompatible shapes: empty bounds,
	// mismatched band counts, even kernels without a center.
	ErrDimensionMismatch = errkind.ErrDimensionMismatch

	// ErrUnsupportedPrecision reports an operation that cannot handle the
	// precision of its source or destination.
	ErrUnsupportedPrecision = errkind.ErrUnsupportedPrecision

	// ErrInvalidParameter reports an out-of-range constructor argument.
	ErrInvalidParameter = errkind.ErrInvalidParameter

	// ErrInterrupted reports a cancelled concurrent run.
	ErrInterrupted = errkind.ErrInterrupted
)

// Worker pool lifecycle errors.
var (
	ErrPoolClosed      = parallel.ErrPoolClosed
	ErrShutdownTimeout = parallel.ErrShutdownTimeout
)
