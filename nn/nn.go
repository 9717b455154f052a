// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"
	"math/rand"

	"github.com/born-ml/neuralnet/internal/activation"
	"github.com/born-ml/neuralnet/internal/nn"
	"github.com/born-ml/neuralnet/internal/tensor"
)

// Common errors.
var (
	ErrNoLayers          = nn.ErrNoLayers
	ErrNoInputs          = nn.ErrNoInputs
	ErrNoForward         = nn.ErrNoForward
	ErrUnknownLoss       = nn.ErrUnknownLoss
	ErrUnknownActivation = activation.ErrUnknownActivation
)

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Network

// Network is a feedforward stack of dense layers.
type Network = nn.Network

// NewNetwork creates a network from layers whose sizes chain together.
//
// Example:
//
//	hidden, _ := nn.NewRandomLayer(nn.Sigmoid{}, 2, 3, nn.Xavier{}, rng)
//	output, _ := nn.NewRandomLayer(nn.Sigmoid{}, 3, 1, nn.Xavier{}, rng)
//	network, err := nn.NewNetwork(hidden, output)
func NewNetwork(layers ...*Layer) (*Network, error) {
	return nn.NewNetwork(layers...)
}

// Builder assembles a network layer by layer.
type Builder = nn.Builder

// NewBuilder starts a network taking inputs values per sample.
//
// Example:
//
//	network, err := nn.NewBuilder(2).
//	    Layer(3, nn.Sigmoid{}).
//	    Output(1, nn.Sigmoid{})
func NewBuilder(inputs int) *Builder {
	return nn.NewBuilder(inputs)
}

// Layers

// Layer is a fully connected layer followed by an activation.
type Layer = nn.Layer

// NewLayer creates a layer from explicit weights of shape [inputs, neurons]
// and an optional bias of shape [1, neurons].
func NewLayer(act Activation, weights, bias *tensor.Tensor) (*Layer, error) {
	return nn.NewLayer(act, weights, bias)
}

// NewRandomLayer creates a layer with weights drawn from init.
func NewRandomLayer(act Activation, inputs, neurons int, init Initializer, rng *rand.Rand) (*Layer, error) {
	return nn.NewRandomLayer(act, inputs, neurons, init, rng)
}

// Activations

// Activation is a differentiable scalar function applied per neuron.
type Activation = activation.Activation

// Identity returns its input.
type Identity = activation.Identity

// Sigmoid is the logistic function 1 / (1 + e^-x).
type Sigmoid = activation.Sigmoid

// TanH is the hyperbolic tangent.
type TanH = activation.TanH

// Rectifier is ReLU, max(0, x).
type Rectifier = activation.Rectifier

// ActivationByName looks an activation up by name (case-insensitive).
func ActivationByName(name string) (Activation, error) {
	return activation.ByName(name)
}

// ActivationNames lists the registered activation names.
func ActivationNames() []string {
	return activation.Names()
}

// Point is one row of an activation table.
type Point = activation.Point

// EvaluateActivation computes value and derivative of a at every input.
func EvaluateActivation(a Activation, inputs []float64) []Point {
	return activation.Evaluate(a, inputs)
}

// WritePoints writes "value ||| derivative" lines rounded to digits places.
func WritePoints(w io.Writer, points []Point, digits int) error {
	return activation.WritePoints(w, points, digits)
}

// Initialization

// Initializer draws initial weights for a layer.
type Initializer = nn.Initializer

// Xavier draws from U(-sqrt(6/(fanIn+fanOut)), +sqrt(6/(fanIn+fanOut))).
type Xavier = nn.Xavier

// RandomUniform draws from U(Low, High).
type RandomUniform = nn.RandomUniform

// RandomNormal draws from N(0, StdDev^2).
type RandomNormal = nn.RandomNormal

// Loss Functions

// Loss measures prediction error and its gradient.
type Loss = nn.Loss

// MSE is the mean squared error over all elements.
type MSE = nn.MSE

// HalfSSE is half the sum of squared errors.
type HalfSSE = nn.HalfSSE

// LossByName looks a loss up by name.
func LossByName(name string) (Loss, error) {
	return nn.LossByName(name)
}
