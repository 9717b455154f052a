// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Example usage:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.5})
//
//	for epoch := range epochs {
//	    loss, err := network.Backward(inputs, expected, nn.HalfSSE{})
//	    optimizer.Step(network.Parameters())
//	    optimizer.ZeroGrad(network.Parameters())
//	}
package optim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/neuralnet/internal/nn"
)

// ErrUnknownOptimizer is returned by ByName for unregistered names.
var ErrUnknownOptimizer = errors.New("unknown optimizer")

// Optimizer updates parameters from the gradients left on them by
// backpropagation.
type Optimizer interface {
	// Step applies gradient updates to all parameters in place.
	// Parameters without a gradient are skipped.
	Step(params []*nn.Parameter)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad(params []*nn.Parameter)

	// LR returns the current learning rate.
	LR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)

	// Name returns the registry name.
	Name() string
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR       float64 // Learning rate
	Momentum float64 // SGD only
}

// ByName creates the optimizer registered under name.
func ByName(name string, cfg Config) (Optimizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sgd":
		return NewSGD(SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum}), nil
	case "adam":
		return NewAdam(AdamConfig{LR: cfg.LR}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOptimizer, name)
	}
}

func zeroGrad(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
