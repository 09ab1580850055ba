package matrix

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/imaging/internal/errkind"
)

// Weights is the read-only view of a convolution kernel.
// Both Kernel[float32] and Kernel[float64] satisfy it.
type Weights interface {
	Size() (rows, cols int)
	Center() (row, col int)
	Weight(row, col int) float64
}

// Kernel is an immutable matrix with a center used to turn kernel-local
// indices into signed offsets.
type Kernel[T Float] struct {
	m         *Matrix[T]
	centerRow int
	centerCol int
}

// NewKernel copies m into a kernel centered at (rows/2, cols/2).
// Even-sized dimensions have no natural center and are rejected; use
// NewKernelCentered for them.
func NewKernel[T Float](m *Matrix[T]) (*Kernel[T], error) {
	if m == nil {
		return nil, fmt.Errorf("matrix: kernel: nil matrix: %w", errkind.ErrInvalidParameter)
	}
	if m.rows%2 == 0 || m.cols%2 == 0 {
		return nil, fmt.Errorf("matrix: kernel %dx%d has no center: %w",
			m.rows, m.cols, errkind.ErrDimensionMismatch)
	}
	return &Kernel[T]{m: m.RowMajor(), centerRow: m.rows / 2, centerCol: m.cols / 2}, nil
}

// NewKernelCentered copies m into a kernel with an explicit center.
func NewKernelCentered[T Float](m *Matrix[T], row, col int) (*Kernel[T], error) {
	if m == nil {
		return nil, fmt.Errorf("matrix: kernel: nil matrix: %w", errkind.ErrInvalidParameter)
	}
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return nil, fmt.Errorf("matrix: kernel %dx%d center (%d,%d) outside: %w",
			m.rows, m.cols, row, col, errkind.ErrDimensionMismatch)
	}
	return &Kernel[T]{m: m.RowMajor(), centerRow: row, centerCol: col}, nil
}

// RowVector builds a 1 x len(values) kernel.
func RowVector[T Float](values ...T) (*Kernel[T], error) {
	m, err := FromSlice(1, len(values), RowMajor, append([]T(nil), values...))
	if err != nil {
		return nil, err
	}
	return NewKernel(m)
}

// ColumnVector builds a len(values) x 1 kernel.
func ColumnVector[T Float](values ...T) (*Kernel[T], error) {
	m, err := FromSlice(len(values), 1, RowMajor, append([]T(nil), values...))
	if err != nil {
		return nil, err
	}
	return NewKernel(m)
}

// Size returns the kernel dimensions.
func (k *Kernel[T]) Size() (rows, cols int) { return k.m.rows, k.m.cols }

// Center returns the center cell.
func (k *Kernel[T]) Center() (row, col int) { return k.centerRow, k.centerCol }

// At returns the raw value at (r, c).
func (k *Kernel[T]) At(r, c int) T { return k.m.data[r*k.m.cols+c] }

// Weight returns the value at (r, c) widened to float64.
func (k *Kernel[T]) Weight(r, c int) float64 { return float64(k.m.data[r*k.m.cols+c]) }

// Matrix returns a copy of the kernel values.
func (k *Kernel[T]) Matrix() *Matrix[T] { return k.m.RowMajor() }

// IsRowVector reports whether the kernel is a single row.
func (k *Kernel[T]) IsRowVector() bool { return k.m.rows == 1 }

// IsColumnVector reports whether the kernel is a single column.
func (k *Kernel[T]) IsColumnVector() bool { return k.m.cols == 1 }

// Transpose returns the transposed kernel with a transposed center.
func (k *Kernel[T]) Transpose() *Kernel[T] {
	return &Kernel[T]{m: k.m.Transpose().RowMajor(), centerRow: k.centerCol, centerCol: k.centerRow}
}

// Halo returns the furthest distance, per axis, that the kernel reaches from
// its center.
func Halo(w Weights) image.Point {
	rows, cols := w.Size()
	cr, cc := w.Center()
	return image.Pt(max(cc, cols-1-cc), max(cr, rows-1-cr))
}

// Outer builds the 2-D kernel col ⊗ row, centered at (col center, row center).
func Outer[T Float](col, row *Kernel[T]) (*Kernel[T], error) {
	if !col.IsColumnVector() || !row.IsRowVector() {
		return nil, fmt.Errorf("matrix: outer product needs a column and a row vector: %w",
			errkind.ErrDimensionMismatch)
	}
	rows, _ := col.Size()
	_, cols := row.Size()
	m := &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
	for r := range rows {
		for c := range cols {
			m.data[r*cols+c] = col.At(r, 0) * row.At(0, c)
		}
	}
	cr, _ := col.Center()
	_, cc := row.Center()
	return &Kernel[T]{m: m, centerRow: cr, centerCol: cc}, nil
}

// separableTolerance is the largest residual accepted by Separate, relative
// to the kernel's largest magnitude.
const separableTolerance = 1e-6

// Separate factors k into a row and a column vector whose outer product
// reproduces k. ok is false when k is not rank one.
func Separate[T Float](k *Kernel[T]) (row, col *Kernel[T], ok bool) {
	rows, cols := k.Size()

	// Pivot on the largest magnitude cell for numerical stability.
	pr, pc := 0, 0
	var peak float64
	for r := range rows {
		for c := range cols {
			if v := math.Abs(k.Weight(r, c)); v > peak {
				peak, pr, pc = v, r, c
			}
		}
	}
	if peak == 0 {
		return nil, nil, false
	}

	pivot := k.Weight(pr, pc)
	colData := make([]T, rows)
	rowData := make([]T, cols)
	for r := range rows {
		colData[r] = T(k.Weight(r, pc))
	}
	for c := range cols {
		rowData[c] = T(k.Weight(pr, c) / pivot)
	}

	for r := range rows {
		for c := range cols {
			residual := math.Abs(float64(colData[r])*float64(rowData[c]) - k.Weight(r, c))
			if residual > separableTolerance*peak {
				return nil, nil, false
			}
		}
	}

	cr, cc := k.Center()
	row = &Kernel[T]{m: &Matrix[T]{rows: 1, cols: cols, data: rowData}, centerRow: 0, centerCol: cc}
	col = &Kernel[T]{m: &Matrix[T]{rows: rows, cols: 1, data: colData}, centerRow: cr, centerCol: 0}
	return row, col, true
}
