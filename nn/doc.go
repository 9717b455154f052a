// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides feedforward neural networks.
//
// # Overview
//
// This package contains:
//   - Network and Builder: stacks of fully connected layers
//   - Layer: dense layer z = xW + b followed by an activation
//   - Activations: Identity, Sigmoid, TanH, Rectifier
//   - Loss functions: MSE, HalfSSE
//   - Initialization: Xavier, RandomUniform, RandomNormal
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/neuralnet/nn"
//	    "github.com/born-ml/neuralnet/tensor"
//	)
//
//	func main() {
//	    network, err := nn.NewBuilder(2).
//	        Layer(3, nn.Sigmoid{}).
//	        Output(1, nn.Sigmoid{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x, _ := tensor.FromRows([][]float64{{0.3, 1}})
//	    y, err := network.Predict(x)
//	}
//
// # Layers
//
// The builder derives each layer's input width from the previous layer and
// initializes weights with Xavier by default:
//
//	network, err := nn.NewBuilder(4).
//	    WithRand(rand.New(rand.NewSource(42))).
//	    WithInitializer(nn.RandomNormal{StdDev: 0.1}).
//	    Layer(8, nn.TanH{}).
//	    Layer(8, nn.TanH{}).
//	    Output(2, nn.Identity{})
//
// Layers with known weights can be created directly:
//
//	layer, err := nn.NewLayer(nn.Identity{}, weights, bias)
//
// # Activations
//
// Activations are looked up by name for configuration files:
//
//	act, err := nn.ActivationByName("relu")
//
// # Loss Functions
//
// HalfSSE is the classic backpropagation objective; its gradient is the
// plain prediction error. MSE averages over every element.
//
//	loss, err := network.Backward(x, y, nn.HalfSSE{})
//
// # Parameter Management
//
// Access network parameters for optimization:
//
//	for _, param := range network.Parameters() {
//	    fmt.Println(param.Name(), param.Tensor().Shape())
//	}
package nn
