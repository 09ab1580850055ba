// Package imaging is a raster filtering engine.
//
// # Overview
//
// imaging applies composable pixel operations (convolution, geometric warps,
// rank filters, band extraction, color-space conversion, rescaling) to
// multi-band rasters, either in a single call or tiled across worker
// goroutines. Tiled runs produce exactly the samples a single-threaded run
// produces.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/imaging"
//	    "github.com/gogpu/imaging/filter"
//	    "github.com/gogpu/imaging/raster"
//	)
//
//	src, _ := raster.NewSize(1024, 768, 3, raster.Byte)
//	blur, _ := filter.NewGaussianBlur(2.5)
//
//	// Single-threaded
//	dst, err := blur.Filter(src, nil)
//
//	// Tiled across GOMAXPROCS goroutines
//	c, _ := imaging.NewConcurrent(blur)
//	dst, err = c.FilterContext(ctx, src, nil)
//
// # Operations
//
// Every operation implements [Op]. Besides creating and filling a
// destination, an Op declares how it may be tiled through [Tiling]:
//
//   - None: the op sees the whole image (global statistics, histograms)
//   - Simple: a destination pixel depends only on the same source pixel
//   - Padded: a destination pixel depends on a fixed neighborhood (halo)
//   - Mapped: a destination pixel may depend on any source pixel
//   - Staged: the op is a sequence of full-image stages
//
// [Concurrent] reads that declaration once and chooses the tiler.
//
// # Architecture
//
// The module is organized into:
//   - raster: images, precisions, views
//   - matrix, padder, interp, mapper, colormodel: building blocks
//   - filter: concrete operations
//   - internal/parallel: tilers, worker pool, executors
//
// # Errors
//
// Failures are reported as wrapped sentinel errors. Test them with
// errors.Is against [ErrDimensionMismatch], [ErrUnsupportedPrecision],
// [ErrInvalidParameter] and [ErrInterrupted].
package imaging
