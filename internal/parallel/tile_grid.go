package parallel

import (
	"fmt"
	"image"

	"github.com/gogpu/imaging/internal/errkind"
)

// Grid divides a rectangle into tiles of a fixed size.
//
// Edge tiles are truncated when the rectangle is not evenly divisible by the
// tile size. Tiles are numbered row-major: index = ty*TilesX + tx.
type Grid struct {
	bounds     image.Rectangle
	tileWidth  int
	tileHeight int
	tilesX     int
	tilesY     int
}

// NewGrid returns the tile layout of bounds. An empty bounds yields a grid
// without tiles.
func NewGrid(bounds image.Rectangle, tileWidth, tileHeight int) (Grid, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return Grid{}, fmt.Errorf("parallel: tile size %dx%d: %w",
			tileWidth, tileHeight, errkind.ErrInvalidParameter)
	}
	g := Grid{bounds: bounds, tileWidth: tileWidth, tileHeight: tileHeight}
	if !bounds.Empty() {
		g.tilesX = (bounds.Dx() + tileWidth - 1) / tileWidth
		g.tilesY = (bounds.Dy() + tileHeight - 1) / tileHeight
	}
	return g, nil
}

// Bounds returns the rectangle covered by the grid.
func (g Grid) Bounds() image.Rectangle { return g.bounds }

// TilesX returns the number of tile columns.
func (g Grid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g Grid) TilesY() int { return g.tilesY }

// Len returns the number of tiles.
func (g Grid) Len() int { return g.tilesX * g.tilesY }

// Rect returns the rectangle of tile i.
func (g Grid) Rect(i int) image.Rectangle {
	tx, ty := i%g.tilesX, i/g.tilesX
	r := image.Rect(
		g.bounds.Min.X+tx*g.tileWidth,
		g.bounds.Min.Y+ty*g.tileHeight,
		g.bounds.Min.X+(tx+1)*g.tileWidth,
		g.bounds.Min.Y+(ty+1)*g.tileHeight,
	)
	return r.Intersect(g.bounds)
}

// TileAtPixel returns the index of the tile containing (x, y), or -1.
func (g Grid) TileAtPixel(x, y int) int {
	if !image.Pt(x, y).In(g.bounds) {
		return -1
	}
	tx := (x - g.bounds.Min.X) / g.tileWidth
	ty := (y - g.bounds.Min.Y) / g.tileHeight
	return ty*g.tilesX + tx
}
