package matrix

import (
	"fmt"
	"image"

	"github.com/samber/lo"

	"github.com/gogpu/imaging/internal/errkind"
)

// Mask is an immutable boolean grid selecting the neighbors that take part
// in a rank filter.
type Mask struct {
	rows      int
	cols      int
	cells     []bool
	centerRow int
	centerCol int
	offsets   []image.Point
}

// NewMask builds a mask from equally sized rows, centered at
// (rows/2, cols/2).
func NewMask(rows [][]bool) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("matrix: mask: empty rows: %w", errkind.ErrDimensionMismatch)
	}
	cols := len(rows[0])
	cells := make([]bool, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix: mask row %d has %d cells, want %d: %w",
				i, len(row), cols, errkind.ErrDimensionMismatch)
		}
		cells = append(cells, row...)
	}
	return newMask(len(rows), cols, cells), nil
}

// FullMask returns a rows x cols mask with every cell set.
func FullMask(rows, cols int) (*Mask, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix: mask %dx%d: %w", rows, cols, errkind.ErrDimensionMismatch)
	}
	return newMask(rows, cols, lo.Times(rows*cols, func(int) bool { return true })), nil
}

func newMask(rows, cols int, cells []bool) *Mask {
	m := &Mask{
		rows:      rows,
		cols:      cols,
		cells:     cells,
		centerRow: rows / 2,
		centerCol: cols / 2,
	}
	m.offsets = make([]image.Point, 0, m.Cardinality())
	for r := range rows {
		for c := range cols {
			if cells[r*cols+c] {
				m.offsets = append(m.offsets, image.Pt(c-m.centerCol, r-m.centerRow))
			}
		}
	}
	return m
}

// Size returns the mask dimensions.
func (m *Mask) Size() (rows, cols int) { return m.rows, m.cols }

// Center returns the center cell.
func (m *Mask) Center() (row, col int) { return m.centerRow, m.centerCol }

// At reports whether cell (r, c) is set.
func (m *Mask) At(r, c int) bool { return m.cells[r*m.cols+c] }

// Cardinality returns the number of set cells.
func (m *Mask) Cardinality() int { return lo.Count(m.cells, true) }

// Offsets returns the signed (dx, dy) offsets of the set cells, row by row.
// The returned slice must not be modified.
func (m *Mask) Offsets() []image.Point { return m.offsets }

// Halo returns the furthest distance per axis the mask reaches from its
// center.
func (m *Mask) Halo() image.Point {
	return image.Pt(max(m.centerCol, m.cols-1-m.centerCol), max(m.centerRow, m.rows-1-m.centerRow))
}
