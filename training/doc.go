// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package training fits networks to datasets and saves the result.
//
// # Overview
//
// This package contains:
//   - Sample, PrepareDataset: turning observations into matrices
//   - MaxScaler: per-column scaling into [-1, 1]
//   - Halt conditions: Epochs, LossBelow, Timeout
//   - Trainer: full-batch or mini-batch gradient descent
//   - Save, Load: JSON snapshots with a SHA-256 checksum
//
// # Basic Usage
//
//	samples := []training.Sample{
//	    training.NewSample([]float64{0, 0}, []float64{0}),
//	    training.NewSample([]float64{0, 1}, []float64{1}),
//	    training.NewSample([]float64{1, 0}, []float64{1}),
//	    training.NewSample([]float64{1, 1}, []float64{0}),
//	}
//
//	trainer, err := training.NewTrainer(network, samples)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := trainer.WithHaltCondition(training.Epochs(5000)); err != nil {
//	    log.Fatal(err)
//	}
//	report, err := trainer.Train(context.Background())
//
// Train checks the context between mini-batches; cancelling it stops
// training and returns the partial report with the context's error.
//
// # Persistence
//
//	if err := training.SaveFile("xor.json", network, training.SnapshotOptions{}); err != nil {
//	    log.Fatal(err)
//	}
//	network, snapshot, err := training.LoadFile("xor.json")
package training
