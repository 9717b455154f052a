// Package training turns samples into tensors and fits networks to them.
package training

import (
	"errors"
	"fmt"

	"github.com/born-ml/neuralnet/internal/tensor"
)

// Dataset errors.
var (
	ErrEmptyDataset       = errors.New("dataset is empty")
	ErrMissingOutputs     = errors.New("sample has no expected outputs")
	ErrInconsistentSample = errors.New("sample width differs from the first sample")
)

// Sample holds the observed values of all the inputs of a network.
//
// A training sample also holds the expected outputs. A prediction sample
// carries inputs only.
type Sample struct {
	inputs  []float64
	outputs []float64
}

// NewSample creates a training sample.
func NewSample(inputs, outputs []float64) Sample {
	return Sample{
		inputs:  append([]float64(nil), inputs...),
		outputs: append([]float64(nil), outputs...),
	}
}

// NewPrediction creates a sample with inputs only.
func NewPrediction(inputs []float64) Sample {
	return Sample{inputs: append([]float64(nil), inputs...)}
}

// Inputs returns the input values.
func (s Sample) Inputs() []float64 {
	return s.inputs
}

// Outputs returns the expected outputs, or nil for a prediction sample.
func (s Sample) Outputs() []float64 {
	return s.outputs
}

// HasOutputs reports whether the sample carries expected outputs.
func (s Sample) HasOutputs() bool {
	return len(s.outputs) > 0
}

// PrepareDataset stacks training samples into an inputs tensor [N, I] and an
// outputs tensor [N, O].
func PrepareDataset(samples []Sample) (inputs, outputs *tensor.Tensor, err error) {
	if len(samples) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	inRows := make([][]float64, len(samples))
	outRows := make([][]float64, len(samples))
	for i, s := range samples {
		if !s.HasOutputs() {
			return nil, nil, fmt.Errorf("sample %d: %w", i, ErrMissingOutputs)
		}
		if err := checkWidth(i, "inputs", len(s.inputs), len(samples[0].inputs)); err != nil {
			return nil, nil, err
		}
		if err := checkWidth(i, "outputs", len(s.outputs), len(samples[0].outputs)); err != nil {
			return nil, nil, err
		}
		inRows[i] = s.inputs
		outRows[i] = s.outputs
	}

	inputs, err = tensor.FromRows(inRows)
	if err != nil {
		return nil, nil, fmt.Errorf("inputs: %w", err)
	}
	outputs, err = tensor.FromRows(outRows)
	if err != nil {
		return nil, nil, fmt.Errorf("outputs: %w", err)
	}
	return inputs, outputs, nil
}

// PrepareInputs stacks the inputs of any samples into a [N, I] tensor,
// ignoring expected outputs.
func PrepareInputs(samples []Sample) (*tensor.Tensor, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}
	rows := make([][]float64, len(samples))
	for i, s := range samples {
		if err := checkWidth(i, "inputs", len(s.inputs), len(samples[0].inputs)); err != nil {
			return nil, err
		}
		rows[i] = s.inputs
	}
	return tensor.FromRows(rows)
}

func checkWidth(i int, what string, got, want int) error {
	if want == 0 {
		return fmt.Errorf("sample 0: no %s: %w", what, ErrInconsistentSample)
	}
	if got != want {
		return fmt.Errorf("sample %d: %d %s, expected %d: %w", i, got, what, want, ErrInconsistentSample)
	}
	return nil
}
