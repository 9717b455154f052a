package optim

import (
	"github.com/born-ml/neuralnet/internal/nn"
	"github.com/born-ml/neuralnet/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens oscillations.
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter]*tensor.Tensor
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter]*tensor.Tensor),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step(params []*nn.Parameter) {
	for _, param := range params {
		grad := param.Grad()
		if grad == nil {
			continue
		}

		if s.momentum == 0 {
			s.updateParameter(param, grad)
		} else {
			s.updateParameterWithMomentum(param, grad)
		}
	}
}

func (s *SGD) updateParameter(param *nn.Parameter, grad *tensor.Tensor) {
	paramData := param.Tensor().Data()
	for i, g := range grad.Data() {
		paramData[i] -= s.lr * g
	}
}

func (s *SGD) updateParameterWithMomentum(param *nn.Parameter, grad *tensor.Tensor) {
	velocity, exists := s.velocities[param]
	if !exists {
		velocity = tensor.Zeros(param.Tensor().Shape())
		s.velocities[param] = velocity
	}

	velocityData := velocity.Data()
	paramData := param.Tensor().Data()
	for i, g := range grad.Data() {
		velocityData[i] = s.momentum*velocityData[i] + g
		paramData[i] -= s.lr * velocityData[i]
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad(params []*nn.Parameter) {
	zeroGrad(params)
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Momentum returns the momentum factor.
func (s *SGD) Momentum() float64 {
	return s.momentum
}

// Name implements Optimizer.
func (s *SGD) Name() string { return "sgd" }
