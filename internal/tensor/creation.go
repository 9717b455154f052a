package tensor

import (
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
// Panics on an invalid shape; use New to get an error instead.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4})
func Zeros(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	t, err := New(shape[0], shape[1])
	if err != nil {
		panic(err)
	}
	return t
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(tensor.Shape{3, 3}, 3.14)
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Distribution produces independent samples used to fill random tensors.
type Distribution interface {
	Sample(rng *rand.Rand) float64
}

// Uniform samples values in [Low, High).
type Uniform struct {
	Low  float64
	High float64
}

// Sample implements Distribution.
func (u Uniform) Sample(rng *rand.Rand) float64 {
	return u.Low + rng.Float64()*(u.High-u.Low)
}

// Normal samples values from N(Mean, StdDev²).
type Normal struct {
	Mean   float64
	StdDev float64
}

// Sample implements Distribution.
func (n Normal) Sample(rng *rand.Rand) float64 {
	return n.Mean + rng.NormFloat64()*n.StdDev
}

// Random creates a tensor whose elements are drawn independently from dist.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	w := tensor.Random(tensor.Shape{2, 3}, tensor.Uniform{Low: -1, High: 1}, rng)
func Random(shape Shape, dist Distribution, rng *rand.Rand) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = dist.Sample(rng)
	}
	return t
}
