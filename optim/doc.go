// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Optimizers read the gradients that backpropagation leaves on each
// parameter and update the parameter tensors in place.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/neuralnet/nn"
//	    "github.com/born-ml/neuralnet/optim"
//	)
//
//	func main() {
//	    network, _ := nn.NewBuilder(2).Layer(3, nn.Sigmoid{}).Output(1, nn.Sigmoid{})
//	    optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.5, Momentum: 0.9})
//
//	    // Training loop
//	    for epoch := range 1000 {
//	        // Forward and backward pass
//	        loss, err := network.Backward(x, y, nn.HalfSSE{})
//
//	        // Update parameters
//	        optimizer.Step(network.Parameters())
//	        optimizer.ZeroGrad(network.Parameters())
//	    }
//	}
//
// Most programs let the training package run this loop.
//
// # Optimizers
//
// SGD (Stochastic Gradient Descent):
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.5,
//	    Momentum: 0.9,
//	})
//
// Adam (Adaptive Moment Estimation):
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.01,
//	    Betas: [2]float64{0.9, 0.999},
//	    Eps:   1e-8,
//	})
//
// By name, for configuration files:
//
//	optimizer, err := optim.ByName("adam", optim.Config{LR: 0.01})
package optim
