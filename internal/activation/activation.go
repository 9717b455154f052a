// Package activation implements the scalar activation functions applied by
// network layers.
//
// Each activation exposes its value and its derivative, both evaluated at the
// pre-activation input x. Backpropagation multiplies the incoming gradient by
// Derivative(z) for every neuron.
package activation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownActivation is returned by ByName for unregistered names.
var ErrUnknownActivation = errors.New("unknown activation")

// Activation defines whether a neuron will send a signal to its outputs.
type Activation interface {
	// Compute returns f(x).
	Compute(x float64) float64

	// Derivative returns f'(x).
	Derivative(x float64) float64

	// Name returns the registry name used in topology and snapshot files.
	Name() string
}

// Identity is f(x) = x.
type Identity struct{}

// Compute implements Activation.
func (Identity) Compute(x float64) float64 { return x }

// Derivative implements Activation.
func (Identity) Derivative(float64) float64 { return 1 }

// Name implements Activation.
func (Identity) Name() string { return "identity" }

// Sigmoid squashes a real value into the ]0, 1[ range.
//
//	σ(x) = 1 / (1 + exp(-x))
//	σ'(x) = σ(x) * (1 - σ(x))
type Sigmoid struct{}

// Compute implements Activation.
func (Sigmoid) Compute(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Derivative implements Activation.
func (s Sigmoid) Derivative(x float64) float64 {
	y := s.Compute(x)
	return y * (1 - y)
}

// Name implements Activation.
func (Sigmoid) Name() string { return "sigmoid" }

// TanH squashes a real value into the ]-1, 1[ range.
type TanH struct{}

// Compute implements Activation.
func (TanH) Compute(x float64) float64 {
	return math.Tanh(x)
}

// Derivative implements Activation.
func (TanH) Derivative(x float64) float64 {
	y := math.Tanh(x)
	return 1 - y*y
}

// Name implements Activation.
func (TanH) Name() string { return "tanh" }

// Rectifier is the Rectified Linear Unit: negative values become 0.
// The derivative at 0 is taken to be 1.
type Rectifier struct{}

// Compute implements Activation.
func (Rectifier) Compute(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// Derivative implements Activation.
func (Rectifier) Derivative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return 1
}

// Name implements Activation.
func (Rectifier) Name() string { return "relu" }

var registry = map[string]Activation{
	"identity":  Identity{},
	"linear":    Identity{},
	"sigmoid":   Sigmoid{},
	"logistic":  Sigmoid{},
	"tanh":      TanH{},
	"relu":      Rectifier{},
	"rectifier": Rectifier{},
}

// ByName returns the activation registered under name (case-insensitive).
func ByName(name string) (Activation, error) {
	a, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownActivation, name, strings.Join(Names(), ", "))
	}
	return a, nil
}

// Names returns the sorted list of registered names, aliases included.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
