package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/neuralnet/internal/tensor"
)

// Initializer produces the initial weight matrix of a layer.
type Initializer interface {
	// Init returns a [fanIn, fanOut] tensor.
	Init(fanIn, fanOut int, rng *rand.Rand) *tensor.Tensor
}

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers,
// which matters most for sigmoid and tanh.
type Xavier struct{}

// Init implements Initializer.
func (Xavier) Init(fanIn, fanOut int, rng *rand.Rand) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.Random(tensor.Shape{fanIn, fanOut}, tensor.Uniform{Low: -bound, High: bound}, rng)
}

// RandomUniform draws weights from U(Low, High).
type RandomUniform struct {
	Low  float64
	High float64
}

// Init implements Initializer.
func (u RandomUniform) Init(fanIn, fanOut int, rng *rand.Rand) *tensor.Tensor {
	return tensor.Random(tensor.Shape{fanIn, fanOut}, tensor.Uniform(u), rng)
}

// RandomNormal draws weights from N(0, StdDev²). A zero StdDev means 1.
type RandomNormal struct {
	StdDev float64
}

// Init implements Initializer.
func (n RandomNormal) Init(fanIn, fanOut int, rng *rand.Rand) *tensor.Tensor {
	std := n.StdDev
	if std == 0 {
		std = 1
	}
	return tensor.Random(tensor.Shape{fanIn, fanOut}, tensor.Normal{StdDev: std}, rng)
}
