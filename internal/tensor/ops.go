package tensor

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/born-ml/neuralnet/internal/parallel"
)

var parallelConfig atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	parallelConfig.Store(&cfg)
}

// SetParallelConfig replaces the configuration used by row-parallel kernels.
func SetParallelConfig(cfg parallel.Config) {
	parallelConfig.Store(&cfg)
}

// ParallelConfig returns the configuration used by row-parallel kernels.
func ParallelConfig() parallel.Config {
	return *parallelConfig.Load()
}

// MatMul performs matrix multiplication: [M, K] @ [K, N] = [M, N].
//
// Rows of the result are computed concurrently when the parallel
// configuration allows it; each goroutine writes a disjoint row range.
func (t *Tensor) MatMul(other *Tensor) (*Tensor, error) {
	m, k := t.Rows(), t.Cols()
	k2, n := other.Rows(), other.Cols()
	if k != k2 {
		return nil, fmt.Errorf("MatMul: %v @ %v: inner dimensions %d and %d differ: %w", t.shape, other.shape, k, k2, ErrShapeMismatch)
	}

	result := Zeros(Shape{m, n})
	a, b, c := t.data, other.data, result.data

	parallel.For(m, func(i int) {
		rowA := a[i*k : (i+1)*k]
		rowC := c[i*n : (i+1)*n]
		for p, av := range rowA {
			if av == 0 {
				continue
			}
			rowB := b[p*n : (p+1)*n]
			for j, bv := range rowB {
				rowC[j] += av * bv
			}
		}
	}, ParallelConfig())

	return result, nil
}

// Transpose returns a new tensor with rows and columns swapped.
func (t *Tensor) Transpose() *Tensor {
	rows, cols := t.Rows(), t.Cols()
	result := Zeros(Shape{cols, rows})
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			result.data[j*rows+i] = t.data[i*cols+j]
		}
	}
	return result
}

// Add performs element-wise addition.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	return t.zip("Add", other, func(a, b float64) float64 { return a + b })
}

// Sub performs element-wise subtraction.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	return t.zip("Sub", other, func(a, b float64) float64 { return a - b })
}

// Mul performs element-wise (Hadamard) multiplication.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) {
	return t.zip("Mul", other, func(a, b float64) float64 { return a * b })
}

func (t *Tensor) zip(op string, other *Tensor, f func(a, b float64) float64) (*Tensor, error) {
	if !t.shape.Equal(other.shape) {
		return nil, fmt.Errorf("%s: %v vs %v: %w", op, t.shape, other.shape, ErrShapeMismatch)
	}
	result := Zeros(t.shape)
	for i := range t.data {
		result.data[i] = f(t.data[i], other.data[i])
	}
	return result, nil
}

// AddRowVector adds a [1, C] row to every row of a [R, C] tensor.
func (t *Tensor) AddRowVector(row *Tensor) (*Tensor, error) {
	if row.Rows() != 1 || row.Cols() != t.Cols() {
		return nil, fmt.Errorf("AddRowVector: cannot broadcast %v onto %v: %w", row.shape, t.shape, ErrShapeMismatch)
	}
	cols := t.Cols()
	result := Zeros(t.shape)
	for i := range t.data {
		result.data[i] = t.data[i] + row.data[i%cols]
	}
	return result, nil
}

// Scale multiplies every element by s.
func (t *Tensor) Scale(s float64) *Tensor {
	return t.Apply(func(x float64) float64 { return x * s })
}

// Apply returns a new tensor with f applied to every element.
func (t *Tensor) Apply(f func(float64) float64) *Tensor {
	result := Zeros(t.shape)
	for i, v := range t.data {
		result.data[i] = f(v)
	}
	return result
}

// SumRows sums over rows, producing a [1, C] tensor of column totals.
func (t *Tensor) SumRows() *Tensor {
	cols := t.Cols()
	result := Zeros(Shape{1, cols})
	for i, v := range t.data {
		result.data[i%cols] += v
	}
	return result
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	var sum float64
	for _, v := range t.data {
		sum += v
	}
	return sum
}

// Max returns the largest element.
func (t *Tensor) Max() float64 {
	m := math.Inf(-1)
	for _, v := range t.data {
		if v > m {
			m = v
		}
	}
	return m
}

// AddInPlace adds other to t element-wise, modifying t.
func (t *Tensor) AddInPlace(other *Tensor) error {
	if !t.shape.Equal(other.shape) {
		return fmt.Errorf("AddInPlace: %v vs %v: %w", t.shape, other.shape, ErrShapeMismatch)
	}
	for i, v := range other.data {
		t.data[i] += v
	}
	return nil
}

// ScaleInPlace multiplies every element of t by s.
func (t *Tensor) ScaleInPlace(s float64) {
	for i := range t.data {
		t.data[i] *= s
	}
}

// CopyFrom overwrites t's data with other's.
func (t *Tensor) CopyFrom(other *Tensor) error {
	if !t.shape.Equal(other.shape) {
		return fmt.Errorf("CopyFrom: %v vs %v: %w", t.shape, other.shape, ErrShapeMismatch)
	}
	copy(t.data, other.data)
	return nil
}

// Equal reports whether both tensors have the same shape and
// elements within tol of each other.
func (t *Tensor) Equal(other *Tensor, tol float64) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i := range t.data {
		if math.Abs(t.data[i]-other.data[i]) > tol {
			return false
		}
	}
	return true
}
