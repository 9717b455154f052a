package training

import (
	"fmt"
	"math"

	"github.com/born-ml/neuralnet/internal/tensor"
)

// MaxScaler divides every column by its largest absolute value so that
// features fall into [-1, 1]. Sigmoid outputs can then reach targets such
// as grades out of 100.
type MaxScaler struct {
	Scale []float64 `yaml:"scale" json:"scale"`
}

// FitMaxScaler computes per-column scales from t. Columns that are all zero
// get a scale of 1.
func FitMaxScaler(t *tensor.Tensor) *MaxScaler {
	scale := make([]float64, t.Cols())
	for i := 0; i < t.Rows(); i++ {
		for j := range scale {
			scale[j] = math.Max(scale[j], math.Abs(t.At(i, j)))
		}
	}
	for j, v := range scale {
		if v == 0 {
			scale[j] = 1
		}
	}
	return &MaxScaler{Scale: scale}
}

// Transform returns t with every column divided by its scale.
func (s *MaxScaler) Transform(t *tensor.Tensor) (*tensor.Tensor, error) {
	return s.apply(t, func(v, scale float64) float64 { return v / scale })
}

// Inverse undoes Transform.
func (s *MaxScaler) Inverse(t *tensor.Tensor) (*tensor.Tensor, error) {
	return s.apply(t, func(v, scale float64) float64 { return v * scale })
}

func (s *MaxScaler) apply(t *tensor.Tensor, f func(v, scale float64) float64) (*tensor.Tensor, error) {
	if t.Cols() != len(s.Scale) {
		return nil, fmt.Errorf("scaler fitted on %d columns, got %d: %w", len(s.Scale), t.Cols(), tensor.ErrShapeMismatch)
	}
	out := t.Clone()
	data := out.Data()
	cols := t.Cols()
	for i := range data {
		data[i] = f(data[i], s.Scale[i%cols])
	}
	return out, nil
}
