package nn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/neuralnet/internal/tensor"
)

// ErrUnknownLoss is returned by LossByName for unregistered names.
var ErrUnknownLoss = errors.New("unknown loss")

// Loss measures how far predictions are from targets.
type Loss interface {
	// Compute returns the scalar loss.
	Compute(predictions, targets *tensor.Tensor) (float64, error)

	// Gradient returns dLoss/dPredictions with the shape of predictions.
	Gradient(predictions, targets *tensor.Tensor) (*tensor.Tensor, error)

	// Name returns the registry name.
	Name() string
}

// MSE computes Mean Squared Error loss.
//
//	Loss = mean((predictions - targets)²)
//	dLoss/dp = 2 * (predictions - targets) / N
type MSE struct{}

// Compute implements Loss.
func (MSE) Compute(predictions, targets *tensor.Tensor) (float64, error) {
	diff, err := predictions.Sub(targets)
	if err != nil {
		return 0, fmt.Errorf("MSE: %w", err)
	}
	sq, _ := diff.Mul(diff)
	return sq.Sum() / float64(sq.NumElements()), nil
}

// Gradient implements Loss.
func (MSE) Gradient(predictions, targets *tensor.Tensor) (*tensor.Tensor, error) {
	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, fmt.Errorf("MSE: %w", err)
	}
	return diff.Scale(2 / float64(diff.NumElements())), nil
}

// Name implements Loss.
func (MSE) Name() string { return "mse" }

// HalfSSE is half the sum of squared errors.
//
//	Loss = ½ Σ (predictions - targets)²
//	dLoss/dp = predictions - targets
type HalfSSE struct{}

// Compute implements Loss.
func (HalfSSE) Compute(predictions, targets *tensor.Tensor) (float64, error) {
	diff, err := predictions.Sub(targets)
	if err != nil {
		return 0, fmt.Errorf("HalfSSE: %w", err)
	}
	sq, _ := diff.Mul(diff)
	return 0.5 * sq.Sum(), nil
}

// Gradient implements Loss.
func (HalfSSE) Gradient(predictions, targets *tensor.Tensor) (*tensor.Tensor, error) {
	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, fmt.Errorf("HalfSSE: %w", err)
	}
	return diff, nil
}

// Name implements Loss.
func (HalfSSE) Name() string { return "half_sse" }

// LossByName returns the loss registered under name.
func LossByName(name string) (Loss, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mse":
		return MSE{}, nil
	case "half_sse", "sse":
		return HalfSSE{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLoss, name)
	}
}
