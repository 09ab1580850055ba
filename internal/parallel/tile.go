// Package parallel provides the tile-based execution machinery behind
// concurrent filtering.
//
// An image is cut into rectangular tiles that workers filter independently.
// Key pieces:
//
//   - Grid: the row-major tile layout of a rectangle, edge tiles truncated
//   - GridTiler: a lock-free work queue handing out each tile exactly once
//   - WorkerPool: persistent workers with per-worker queues and stealing
//   - Threads: dedicated goroutines joined per call
//
// Tiles never depend on each other: any completion order is valid, and
// cancellation is observed only between tiles, so a tile is either fully
// written or not touched.
package parallel

import "image"

// Default tile size in pixels.
const (
	// TileWidth is the default tile width.
	TileWidth = 64

	// TileHeight is the default tile height.
	TileHeight = 64
)

// Tile is one unit of work.
type Tile struct {
	// Index is the tile position in the grid's row-major order.
	Index int

	// Rect is the writable destination rectangle.
	Rect image.Rectangle

	// Read is the source rectangle the worker may read. It equals Rect for
	// simple tiles, Rect grown by the halo for padded tiles and the whole
	// source for mapped tiles.
	Read image.Rectangle
}

// Halo returns how far Read extends beyond Rect on the top-left side.
func (t Tile) Halo() image.Point {
	return t.Rect.Min.Sub(t.Read.Min)
}

// Contains reports whether the pixel (x, y) is writable by this tile.
func (t Tile) Contains(x, y int) bool {
	return image.Pt(x, y).In(t.Rect)
}
