// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/born-ml/neuralnet/tensor"
)

// TestTensorAPI verifies the Tensor alias exposes the expected API.
func TestTensorAPI(t *testing.T) {
	x, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}

	if !x.Shape().Equal(tensor.Shape{2, 2}) {
		t.Errorf("Shape() = %v, want [2 2]", x.Shape())
	}
	if n := x.NumElements(); n != 4 {
		t.Errorf("NumElements() = %d, want 4", n)
	}

	id, _ := tensor.FromSlice([]float64{1, 0, 0, 1}, tensor.Shape{2, 2})
	z, err := x.MatMul(id)
	if err != nil {
		t.Fatalf("MatMul failed: %v", err)
	}
	if !z.Equal(x, 0) {
		t.Errorf("x·I = %v, want %v", z, x)
	}

	if got := x.Transpose().At(0, 1); got != 3 {
		t.Errorf("Transpose().At(0, 1) = %v, want 3", got)
	}

	clone := x.Clone()
	clone.Set(100, 0, 0)
	if x.At(0, 0) != 1 {
		t.Error("Clone() shares memory with the original")
	}
}

// TestShapeMismatch verifies the sentinel error is exported.
func TestShapeMismatch(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3})
	b := tensor.Zeros(tensor.Shape{2, 3})
	if _, err := a.MatMul(b); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("MatMul error = %v, want ErrShapeMismatch", err)
	}
}

// TestCreation covers the constructors.
func TestCreation(t *testing.T) {
	if _, err := tensor.New(0, 1); err == nil {
		t.Error("New(0, 1) should fail")
	}

	full := tensor.Full(tensor.Shape{1, 3}, 2.5)
	if full.Sum() != 7.5 {
		t.Errorf("Full sum = %v, want 7.5", full.Sum())
	}

	r := tensor.Random(tensor.Shape{10, 10}, tensor.Uniform{Low: -1, High: 1}, rand.New(rand.NewSource(1)))
	for _, v := range r.Data() {
		if v < -1 || v >= 1 {
			t.Fatalf("Random value %v outside [-1, 1)", v)
		}
	}
}

// TestParallelConfig verifies the configuration round trip.
func TestParallelConfig(t *testing.T) {
	prev := tensor.CurrentParallelConfig()
	defer tensor.SetParallelConfig(prev)

	tensor.SetParallelConfig(tensor.WithWorkers(3))
	if got := tensor.CurrentParallelConfig().NumWorkers; got != 3 {
		t.Errorf("NumWorkers = %d, want 3", got)
	}

	tensor.SetParallelConfig(tensor.Sequential())
	if tensor.CurrentParallelConfig().Enabled {
		t.Error("Sequential() should disable parallelism")
	}
}
