// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the matrices that flow through
// a network.
//
// Example:
//
//	x, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	w := tensor.Zeros(tensor.Shape{2, 3})
//	z, err := x.MatMul(w)
package tensor

import (
	"math/rand"

	"github.com/born-ml/neuralnet/internal/parallel"
	"github.com/born-ml/neuralnet/internal/tensor"
)

// ErrShapeMismatch is returned when operand shapes are incompatible.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// Shape represents the dimensions of a tensor.
// Example: Shape{3, 2} is a matrix with 3 rows and 2 columns.
type Shape = tensor.Shape

// Tensor is a dense row-major float64 matrix.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor with the given dimensions.
func New(rows, cols int) (*Tensor, error) {
	return tensor.New(rows, cols)
}

// FromSlice creates a tensor from row-major data. The data is copied.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromRows creates a tensor with one row per element of rows.
func FromRows(rows [][]float64) (*Tensor, error) {
	return tensor.FromRows(rows)
}

// RowVector creates a [1, len(values)] tensor.
func RowVector(values ...float64) (*Tensor, error) {
	return tensor.RowVector(values...)
}

// Zeros creates a zero-filled tensor. It panics on an invalid shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// Distribution samples scalar values.
type Distribution = tensor.Distribution

// Uniform samples from U(Low, High).
type Uniform = tensor.Uniform

// Normal samples from N(Mean, StdDev^2).
type Normal = tensor.Normal

// Random creates a tensor with values drawn from dist.
func Random(shape Shape, dist Distribution, rng *rand.Rand) *Tensor {
	return tensor.Random(shape, dist, rng)
}

// Parallelism

// ParallelConfig controls how matrix products are split across goroutines.
type ParallelConfig = parallel.Config

// SetParallelConfig replaces the process-wide parallel configuration.
//
// Example:
//
//	tensor.SetParallelConfig(tensor.WithWorkers(4))
func SetParallelConfig(cfg ParallelConfig) {
	tensor.SetParallelConfig(cfg)
}

// CurrentParallelConfig returns the process-wide parallel configuration.
func CurrentParallelConfig() ParallelConfig {
	return tensor.ParallelConfig()
}

// WithWorkers returns a configuration using n workers; n <= 0 selects one
// per physical core.
func WithWorkers(n int) ParallelConfig {
	return parallel.WithWorkers(n)
}

// Sequential returns a configuration that never spawns goroutines.
func Sequential() ParallelConfig {
	return parallel.Sequential()
}
