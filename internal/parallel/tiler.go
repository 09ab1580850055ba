package parallel

import (
	"image"
	"sync/atomic"
)

// Tiler is a thread-safe queue of tiles. Next returns false once every tile
// has been handed out; no tile is ever returned twice.
type Tiler interface {
	Next() (Tile, bool)
	Len() int
}

// GridTiler hands out the tiles of a Grid in row-major order using an atomic
// cursor.
type GridTiler struct {
	grid   Grid
	cursor atomic.Int64
	read   func(image.Rectangle) image.Rectangle
}

// NewSimpleTiler returns a tiler whose tiles read exactly what they write.
func NewSimpleTiler(bounds image.Rectangle, tileWidth, tileHeight int) (*GridTiler, error) {
	g, err := NewGrid(bounds, tileWidth, tileHeight)
	if err != nil {
		return nil, err
	}
	return &GridTiler{grid: g, read: func(r image.Rectangle) image.Rectangle { return r }}, nil
}

// NewPaddedTiler returns a tiler whose tiles read their rectangle grown by
// halo, clipped to source.
func NewPaddedTiler(bounds, source image.Rectangle, tileWidth, tileHeight int, halo image.Point) (*GridTiler, error) {
	g, err := NewGrid(bounds, tileWidth, tileHeight)
	if err != nil {
		return nil, err
	}
	return &GridTiler{grid: g, read: func(r image.Rectangle) image.Rectangle {
		return image.Rectangle{Min: r.Min.Sub(halo), Max: r.Max.Add(halo)}.Intersect(source)
	}}, nil
}

// NewMappedTiler returns a tiler partitioning the destination only; every
// tile may read the whole source.
func NewMappedTiler(bounds, source image.Rectangle, tileWidth, tileHeight int) (*GridTiler, error) {
	g, err := NewGrid(bounds, tileWidth, tileHeight)
	if err != nil {
		return nil, err
	}
	return &GridTiler{grid: g, read: func(image.Rectangle) image.Rectangle { return source }}, nil
}

// Next implements Tiler.
func (t *GridTiler) Next() (Tile, bool) {
	i := int(t.cursor.Add(1) - 1)
	if i >= t.grid.Len() {
		return Tile{}, false
	}
	r := t.grid.Rect(i)
	return Tile{Index: i, Rect: r, Read: t.read(r)}, true
}

// Len implements Tiler.
func (t *GridTiler) Len() int { return t.grid.Len() }

// Grid returns the underlying layout.
func (t *GridTiler) Grid() Grid { return t.grid }
