package nn

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/born-ml/neuralnet/internal/activation"
)

// ErrNoInputs is returned when a network is declared with fewer than one input.
var ErrNoInputs = errors.New("a network requires at least 1 input")

// Builder declares a feedforward topology layer by layer.
//
// Example:
//
//	net, err := nn.NewBuilder(2).
//	    Layer(2, activation.Sigmoid{}).
//	    Output(1, activation.Sigmoid{})
//
// The first error encountered is kept and returned by Output.
type Builder struct {
	lastOutputs int
	layers      []*Layer
	init        Initializer
	rng         *rand.Rand
	err         error
}

// NewBuilder starts a topology with the given number of inputs.
func NewBuilder(inputs int) *Builder {
	b := &Builder{
		lastOutputs: inputs,
		init:        Xavier{},
	}
	if inputs < 1 {
		b.err = fmt.Errorf("%w: got %d", ErrNoInputs, inputs)
	}
	return b
}

// WithRand sets the random source used to initialize weights.
// Without it, a time-seeded source is used.
func (b *Builder) WithRand(rng *rand.Rand) *Builder {
	b.rng = rng
	return b
}

// WithInitializer sets the weight initializer for subsequently added layers.
func (b *Builder) WithInitializer(init Initializer) *Builder {
	if init != nil {
		b.init = init
	}
	return b
}

// Layer adds a hidden layer with the given number of neurons.
func (b *Builder) Layer(neurons int, act activation.Activation) *Builder {
	b.add(neurons, act)
	return b
}

// Output adds the output layer and returns the finished network.
func (b *Builder) Output(outputs int, act activation.Activation) (*Network, error) {
	b.add(outputs, act)
	if b.err != nil {
		return nil, b.err
	}
	return NewNetwork(b.layers...)
}

func (b *Builder) add(neurons int, act activation.Activation) {
	if b.err != nil {
		return
	}
	if neurons < 1 {
		b.err = fmt.Errorf("layer %d: at least 1 neuron required, got %d", len(b.layers), neurons)
		return
	}
	if b.rng == nil {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	layer, err := NewRandomLayer(act, b.lastOutputs, neurons, b.init, b.rng)
	if err != nil {
		b.err = fmt.Errorf("layer %d: %w", len(b.layers), err)
		return
	}
	b.layers = append(b.layers, layer)
	b.lastOutputs = neurons
}
