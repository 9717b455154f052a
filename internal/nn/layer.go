package nn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/born-ml/neuralnet/internal/activation"
	"github.com/born-ml/neuralnet/internal/tensor"
)

// ErrNoForward is returned by Backward when Forward has not been run.
var ErrNoForward = errors.New("backward called before forward")

// Layer is a fully connected layer of artificial neurons.
//
// Every input reaches every neuron through its own weight, which determines
// its influence on the outputs:
//
//	z = x @ W + b
//	a = f(z)
//
// where:
//   - x has shape [batch_size, inputs]
//   - W has shape [inputs, neurons]
//   - b has shape [1, neurons]
//   - a has shape [batch_size, neurons]
//
// The layer keeps x, z and a from the last Forward call so that Backward can
// compute gradients without recomputing them.
type Layer struct {
	activation activation.Activation
	weight     *Parameter
	bias       *Parameter

	input  *tensor.Tensor
	preAct *tensor.Tensor
	output *tensor.Tensor
}

// NewLayer creates a layer from an explicit weight matrix [inputs, neurons].
// A nil bias is initialized to zeros.
func NewLayer(act activation.Activation, weights, bias *tensor.Tensor) (*Layer, error) {
	if act == nil {
		return nil, fmt.Errorf("NewLayer: activation is nil")
	}
	if weights == nil {
		return nil, fmt.Errorf("NewLayer: weights are nil")
	}
	neurons := weights.Cols()
	if bias == nil {
		bias = tensor.Zeros(tensor.Shape{1, neurons})
	}
	if !bias.Shape().Equal(tensor.Shape{1, neurons}) {
		return nil, fmt.Errorf("NewLayer: bias shape %v, expected [1 %d]: %w", bias.Shape(), neurons, tensor.ErrShapeMismatch)
	}

	return &Layer{
		activation: act,
		weight:     NewParameter("weight", weights),
		bias:       NewParameter("bias", bias),
	}, nil
}

// NewRandomLayer creates a layer with inputs→neurons weights drawn from init
// and zero biases.
func NewRandomLayer(act activation.Activation, inputs, neurons int, init Initializer, rng *rand.Rand) (*Layer, error) {
	if inputs < 1 || neurons < 1 {
		return nil, fmt.Errorf("NewRandomLayer: invalid topology %d→%d", inputs, neurons)
	}
	if init == nil {
		init = Xavier{}
	}
	return NewLayer(act, init.Init(inputs, neurons, rng), nil)
}

// Forward computes the output of the layer for a batch of inputs.
func (l *Layer) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	if input.Cols() != l.Inputs() {
		return nil, fmt.Errorf("Layer.Forward: expected input with %d features, got %d: %w",
			l.Inputs(), input.Cols(), tensor.ErrShapeMismatch)
	}

	z, err := input.MatMul(l.weight.Tensor())
	if err != nil {
		return nil, fmt.Errorf("Layer.Forward: %w", err)
	}
	z, err = z.AddRowVector(l.bias.Tensor())
	if err != nil {
		return nil, fmt.Errorf("Layer.Forward: %w", err)
	}

	l.input = input
	l.preAct = z
	l.output = z.Apply(l.activation.Compute)
	return l.output, nil
}

// Backward propagates gradOutput (dLoss/da, shape [batch_size, neurons])
// through the layer.
//
// It stores dLoss/dW and dLoss/db on the weight and bias parameters and
// returns dLoss/dx for the previous layer:
//
//	δ  = gradOutput ⊙ f'(z)
//	dW = xᵀ @ δ
//	db = Σ_rows δ
//	dx = δ @ Wᵀ
func (l *Layer) Backward(gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	if l.preAct == nil {
		return nil, ErrNoForward
	}

	delta, err := gradOutput.Mul(l.preAct.Apply(l.activation.Derivative))
	if err != nil {
		return nil, fmt.Errorf("Layer.Backward: %w", err)
	}

	gradW, err := l.input.Transpose().MatMul(delta)
	if err != nil {
		return nil, fmt.Errorf("Layer.Backward: %w", err)
	}
	l.weight.SetGrad(gradW)
	l.bias.SetGrad(delta.SumRows())

	gradInput, err := delta.MatMul(l.weight.Tensor().Transpose())
	if err != nil {
		return nil, fmt.Errorf("Layer.Backward: %w", err)
	}
	return gradInput, nil
}

// Parameters returns [weight, bias].
func (l *Layer) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Layer) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Layer) Bias() *Parameter {
	return l.bias
}

// Activation returns the layer's activation function.
func (l *Layer) Activation() activation.Activation {
	return l.activation
}

// Inputs returns the number of inputs per sample.
func (l *Layer) Inputs() int {
	return l.weight.Tensor().Rows()
}

// Neurons returns the number of neurons, which is also the number of outputs.
func (l *Layer) Neurons() int {
	return l.weight.Tensor().Cols()
}

// Output returns the activations from the last Forward call, or nil.
func (l *Layer) Output() *tensor.Tensor {
	return l.output
}

// StateDict returns a map of parameter names to tensors.
func (l *Layer) StateDict() map[string]*tensor.Tensor {
	return map[string]*tensor.Tensor{
		"weight": l.weight.Tensor(),
		"bias":   l.bias.Tensor(),
	}
}

// LoadStateDict copies parameters from a state dictionary.
func (l *Layer) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	for _, p := range l.Parameters() {
		src, ok := stateDict[p.Name()]
		if !ok {
			return fmt.Errorf("missing %s in state dict", p.Name())
		}
		if !src.Shape().Equal(p.Tensor().Shape()) {
			return fmt.Errorf("%s shape mismatch: expected %v, got %v: %w",
				p.Name(), p.Tensor().Shape(), src.Shape(), tensor.ErrShapeMismatch)
		}
		if err := p.Tensor().CopyFrom(src); err != nil {
			return err
		}
	}
	return nil
}
