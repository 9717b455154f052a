// Package nn implements feedforward neural networks.
//
// This package provides:
//   - Layer: a fully connected layer with an activation function
//   - Network: a chain of layers with forward and backward propagation
//   - Builder: a fluent way to declare common topologies
//   - Loss functions: MSE, HalfSSE
//   - Initializers: Xavier, RandomUniform, RandomNormal
package nn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/neuralnet/internal/tensor"
)

// ErrNoLayers is returned when a network without layers is run.
var ErrNoLayers = errors.New("no layers defined")

// Network mimics the behavior of real nervous systems by simulating neurons
// grouped into layers. Each layer's output becomes the next layer's input.
//
// A Network caches per-layer activations during Forward, so a single
// Network must not be run from several goroutines at once.
type Network struct {
	layers []*Layer
}

// NewNetwork chains layers together. Each layer must accept as many inputs
// as the previous layer has neurons.
func NewNetwork(layers ...*Layer) (*Network, error) {
	for i := 1; i < len(layers); i++ {
		if layers[i].Inputs() != layers[i-1].Neurons() {
			return nil, fmt.Errorf("layer %d expects %d inputs but layer %d has %d neurons: %w",
				i, layers[i].Inputs(), i-1, layers[i-1].Neurons(), tensor.ErrShapeMismatch)
		}
	}
	return &Network{layers: layers}, nil
}

// Forward performs forward propagation across the layers and returns the
// last layer's output, shape [batch_size, outputs].
func (n *Network) Forward(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	if len(n.layers) == 0 {
		return nil, fmt.Errorf("Network.Forward: %w", ErrNoLayers)
	}

	output := inputs
	for i, layer := range n.layers {
		var err error
		output, err = layer.Forward(output)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return output, nil
}

// Predict runs the network on a batch and returns a fresh copy of the
// outputs, unaffected by later Forward calls.
func (n *Network) Predict(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	out, err := n.Forward(inputs)
	if err != nil {
		return nil, err
	}
	return out.Clone(), nil
}

// Backward runs forward propagation on inputs, measures loss against
// expected and backpropagates the error through every layer, leaving the
// gradients on each layer's parameters. It returns the loss value.
func (n *Network) Backward(inputs, expected *tensor.Tensor, loss Loss) (float64, error) {
	predictions, err := n.Forward(inputs)
	if err != nil {
		return 0, err
	}

	value, err := loss.Compute(predictions, expected)
	if err != nil {
		return 0, fmt.Errorf("Network.Backward: %w", err)
	}

	grad, err := loss.Gradient(predictions, expected)
	if err != nil {
		return 0, fmt.Errorf("Network.Backward: %w", err)
	}

	for i := len(n.layers) - 1; i >= 0; i-- {
		grad, err = n.layers[i].Backward(grad)
		if err != nil {
			return 0, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return value, nil
}

// Layers returns the network's layers in order.
func (n *Network) Layers() []*Layer {
	return n.layers
}

// Inputs returns the number of inputs the first layer accepts.
func (n *Network) Inputs() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[0].Inputs()
}

// Outputs returns the number of neurons of the last layer.
func (n *Network) Outputs() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[len(n.layers)-1].Neurons()
}

// Parameters returns all trainable parameters from all layers.
func (n *Network) Parameters() []*Parameter {
	var params []*Parameter
	for _, layer := range n.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// ZeroGrad clears the gradient of every parameter.
func (n *Network) ZeroGrad() {
	for _, p := range n.Parameters() {
		p.ZeroGrad()
	}
}

// StateDict returns a map of parameter names to tensors.
//
// Parameters are prefixed with their layer index (e.g., "0.weight", "1.bias").
func (n *Network) StateDict() map[string]*tensor.Tensor {
	stateDict := make(map[string]*tensor.Tensor)
	for i, layer := range n.layers {
		for name, t := range layer.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = t
		}
	}
	return stateDict
}

// LoadStateDict loads parameters from a state dictionary produced by StateDict.
func (n *Network) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	perLayer := make([]map[string]*tensor.Tensor, len(n.layers))
	for i := range perLayer {
		perLayer[i] = make(map[string]*tensor.Tensor)
	}

	for key, t := range stateDict {
		idx, name, ok := strings.Cut(key, ".")
		if !ok {
			return fmt.Errorf("malformed state key %q", key)
		}
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 || i >= len(n.layers) {
			return fmt.Errorf("state key %q does not match any of %d layers", key, len(n.layers))
		}
		perLayer[i][name] = t
	}

	for i, layer := range n.layers {
		if err := layer.LoadStateDict(perLayer[i]); err != nil {
			return fmt.Errorf("failed to load layer %d: %w", i, err)
		}
	}
	return nil
}
