// Package matrix provides the dense numeric matrices, kernels and masks used
// by convolution and rank filters.
//
// Matrices come in 32- and 64-bit float variants through a type parameter.
// Kernels and masks are immutable once built and may be shared across
// goroutines without synchronization.
package matrix

import (
	"fmt"

	"github.com/gogpu/imaging/internal/errkind"
)

// Float is the set of sample types a Matrix can hold.
type Float interface {
	~float32 | ~float64
}

// Layout tags how matrix data is laid out in its backing slice.
type Layout uint8

const (
	// RowMajor stores rows contiguously: index = row*cols + col.
	RowMajor Layout = iota

	// ColumnMajor stores columns contiguously: index = col*rows + row.
	ColumnMajor
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "RowMajor"
	case ColumnMajor:
		return "ColumnMajor"
	default:
		return "Unknown"
	}
}

func (l Layout) index(rows, cols, r, c int) int {
	if l == ColumnMajor {
		return c*rows + r
	}
	return r*cols + c
}

func (l Layout) flip() Layout {
	if l == ColumnMajor {
		return RowMajor
	}
	return ColumnMajor
}

// Matrix is a dense rows x cols grid of floats.
//
// Transpose shares storage with the receiver; use RowMajor to obtain an
// independent copy.
type Matrix[T Float] struct {
	rows   int
	cols   int
	layout Layout
	data   []T
}

// New returns a zeroed row-major matrix.
func New[T Float](rows, cols int) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix: %dx%d: %w", rows, cols, errkind.ErrDimensionMismatch)
	}
	return &Matrix[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
	}, nil
}

// FromSlice wraps data without copying. len(data) must equal rows*cols.
func FromSlice[T Float](rows, cols int, layout Layout, data []T) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 || rows*cols != len(data) {
		return nil, fmt.Errorf("matrix: %d values for %dx%d: %w",
			len(data), rows, cols, errkind.ErrDimensionMismatch)
	}
	if layout != RowMajor && layout != ColumnMajor {
		return nil, fmt.Errorf("matrix: layout %d: %w", layout, errkind.ErrInvalidParameter)
	}
	return &Matrix[T]{rows: rows, cols: cols, layout: layout, data: data}, nil
}

// FromRows builds a row-major matrix from equally sized rows.
func FromRows[T Float](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("matrix: empty rows: %w", errkind.ErrDimensionMismatch)
	}
	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix: row %d has %d values, want %d: %w",
				i, len(row), cols, errkind.ErrDimensionMismatch)
		}
		data = append(data, row...)
	}
	return &Matrix[T]{rows: len(rows), cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// Layout returns the storage layout tag.
func (m *Matrix[T]) Layout() Layout { return m.layout }

// At returns the value at (r, c).
func (m *Matrix[T]) At(r, c int) T {
	return m.data[m.layout.index(m.rows, m.cols, r, c)]
}

// Set stores v at (r, c).
func (m *Matrix[T]) Set(r, c int, v T) {
	m.data[m.layout.index(m.rows, m.cols, r, c)] = v
}

// Transpose returns the transposed matrix. The result shares the receiver's
// storage: only the shape and the layout tag change.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	return &Matrix[T]{
		rows:   m.cols,
		cols:   m.rows,
		layout: m.layout.flip(),
		data:   m.data,
	}
}

// RowMajor returns a row-major copy of the matrix.
func (m *Matrix[T]) RowMajor() *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	if m.layout == RowMajor {
		copy(out.data, m.data)
		return out
	}
	for r := range m.rows {
		for c := range m.cols {
			out.data[r*m.cols+c] = m.At(r, c)
		}
	}
	return out
}

// Data returns the values in row-major order as a new slice.
func (m *Matrix[T]) Data() []T {
	return m.RowMajor().data
}

// Convert returns a row-major copy of m with values converted to U.
func Convert[T, U Float](m *Matrix[T]) *Matrix[U] {
	out := &Matrix[U]{rows: m.rows, cols: m.cols, data: make([]U, len(m.data))}
	for r := range m.rows {
		for c := range m.cols {
			out.data[r*m.cols+c] = U(m.At(r, c))
		}
	}
	return out
}
