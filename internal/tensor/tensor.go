// Package tensor provides the dense float64 matrices used by the network layers.
//
// Every tensor is two-dimensional and stored in row-major order. A batch of
// samples is laid out one sample per row:
//
//	x, _ := tensor.FromRows([][]float64{{0, 1}, {1, 0}})  // shape [2, 2]
//	w := tensor.Zeros(tensor.Shape{2, 3})
//	z, _ := x.MatMul(w)                                     // shape [2, 3]
package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShapeMismatch is returned when operand shapes are incompatible.
var ErrShapeMismatch = errors.New("shape mismatch")

// Tensor is a dense row-major matrix of float64 values.
type Tensor struct {
	shape Shape
	data  []float64
}

// New creates a zero-filled tensor with the given number of rows and columns.
func New(rows, cols int) (*Tensor, error) {
	shape := Shape{rows, cols}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		shape: shape,
		data:  make([]float64, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	t := &Tensor{
		shape: shape.Clone(),
		data:  make([]float64, len(data)),
	}
	copy(t.data, data)
	return t, nil
}

// FromRows creates a tensor with one row per element of rows.
// All rows must have the same, non-zero length.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("FromRows: no rows")
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("FromRows: row 0 is empty")
	}

	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d columns, expected %d: %w", i, len(row), cols, ErrShapeMismatch)
		}
		data = append(data, row...)
	}
	return FromSlice(data, Shape{len(rows), cols})
}

// RowVector creates a [1, len(values)] tensor.
func RowVector(values ...float64) (*Tensor, error) {
	return FromSlice(values, Shape{1, len(values)})
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Rows returns the number of rows.
func (t *Tensor) Rows() int {
	return t.shape[0]
}

// Cols returns the number of columns.
func (t *Tensor) Cols() int {
	return t.shape[1]
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying data slice.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns the element at row i, column j.
// Panics if the indices are out of bounds.
func (t *Tensor) At(i, j int) float64 {
	return t.data[t.offset(i, j)]
}

// Set sets the element at row i, column j.
// Panics if the indices are out of bounds.
func (t *Tensor) Set(value float64, i, j int) {
	t.data[t.offset(i, j)] = value
}

func (t *Tensor) offset(i, j int) int {
	if i < 0 || i >= t.shape[0] || j < 0 || j >= t.shape[1] {
		panic(fmt.Sprintf("index (%d, %d) out of bounds for shape %v", i, j, t.shape))
	}
	return i*t.shape[1] + j
}

// Row returns a copy of row i.
func (t *Tensor) Row(i int) []float64 {
	start := t.offset(i, 0)
	row := make([]float64, t.shape[1])
	copy(row, t.data[start:start+t.shape[1]])
	return row
}

// ToRows returns a copy of the tensor as a slice of rows.
func (t *Tensor) ToRows() [][]float64 {
	rows := make([][]float64, t.Rows())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Clone creates a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{
		shape: t.shape.Clone(),
		data:  data,
	}
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor%v[", t.shape)
	for i := 0; i < t.Rows(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", t.Row(i))
	}
	sb.WriteString("]")
	return sb.String()
}
