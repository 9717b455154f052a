// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package training

import (
	"io"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/born-ml/neuralnet/internal/nn"
	"github.com/born-ml/neuralnet/internal/optim"
	"github.com/born-ml/neuralnet/internal/serialization"
	"github.com/born-ml/neuralnet/internal/tensor"
	"github.com/born-ml/neuralnet/internal/training"
)

// Common errors.
var (
	ErrEmptyDataset       = training.ErrEmptyDataset
	ErrMissingOutputs     = training.ErrMissingOutputs
	ErrInconsistentSample = training.ErrInconsistentSample
	ErrZeroEpochs         = training.ErrZeroEpochs
	ErrChecksumMismatch   = serialization.ErrChecksumMismatch
)

// Samples

// Sample holds the inputs, and for training the expected outputs, of one
// observation.
type Sample = training.Sample

// NewSample creates a training sample. The slices are copied.
func NewSample(inputs, outputs []float64) Sample {
	return training.NewSample(inputs, outputs)
}

// NewPrediction creates a sample with inputs only.
func NewPrediction(inputs []float64) Sample {
	return training.NewPrediction(inputs)
}

// PrepareDataset stacks samples into input and output matrices.
func PrepareDataset(samples []Sample) (inputs, outputs *tensor.Tensor, err error) {
	return training.PrepareDataset(samples)
}

// PrepareInputs stacks the inputs of samples into a matrix.
func PrepareInputs(samples []Sample) (*tensor.Tensor, error) {
	return training.PrepareInputs(samples)
}

// MaxScaler divides every column by its largest absolute value.
type MaxScaler = training.MaxScaler

// FitMaxScaler computes per-column scales from t.
func FitMaxScaler(t *tensor.Tensor) *MaxScaler {
	return training.FitMaxScaler(t)
}

// Halt Conditions

// HaltCondition decides when training stops.
type HaltCondition = training.HaltCondition

// Epochs stops after a fixed number of epochs.
type Epochs = training.Epochs

// LossBelow stops once the loss drops below Threshold, or after MaxEpochs.
type LossBelow = training.LossBelow

// Timeout stops once Duration has elapsed, or after MaxEpochs.
type Timeout = training.Timeout

// Trainer

// Trainer fits a network to a dataset by gradient descent.
type Trainer = training.Trainer

// Option configures a Trainer.
type Option = training.Option

// EpochStats describes one finished epoch.
type EpochStats = training.EpochStats

// Report summarizes a training run.
type Report = training.Report

// NewTrainer prepares samples and checks them against the network.
//
// Example:
//
//	trainer, err := training.NewTrainer(network, samples,
//	    training.WithOptimizer(optim.NewSGD(optim.SGDConfig{LR: 0.5, Momentum: 0.9})),
//	)
//	if err := trainer.WithHaltCondition(training.LossBelow{Threshold: 0.01, MaxEpochs: 20000}); err != nil {
//	    log.Fatal(err)
//	}
//	report, err := trainer.Train(ctx)
func NewTrainer(network *nn.Network, samples []Sample, opts ...Option) (*Trainer, error) {
	return training.NewTrainer(network, samples, opts...)
}

// NewTrainerFromTensors is NewTrainer for an already prepared dataset.
func NewTrainerFromTensors(network *nn.Network, inputs, outputs *tensor.Tensor, opts ...Option) (*Trainer, error) {
	return training.NewTrainerFromTensors(network, inputs, outputs, opts...)
}

// WithOptimizer sets the optimizer. Default: SGD with learning rate 0.5.
func WithOptimizer(o optim.Optimizer) Option { return training.WithOptimizer(o) }

// WithLoss sets the loss function. Default: HalfSSE.
func WithLoss(l nn.Loss) Option { return training.WithLoss(l) }

// WithBatchSize splits every epoch into mini-batches of n samples.
func WithBatchSize(n int) Option { return training.WithBatchSize(n) }

// WithShuffle reorders samples at the start of every epoch.
func WithShuffle(rng *rand.Rand) Option { return training.WithShuffle(rng) }

// WithLogger sets the logger used for progress.
func WithLogger(l zerolog.Logger) Option { return training.WithLogger(l) }

// WithLogEvery logs progress every n epochs.
func WithLogEvery(n int) Option { return training.WithLogEvery(n) }

// WithProgress registers a callback invoked after every epoch.
func WithProgress(f func(EpochStats)) Option { return training.WithProgress(f) }

// Persistence

// SnapshotOptions carries optional content stored with a saved network.
type SnapshotOptions = serialization.Options

// Snapshot is the decoded header and payload of a saved network.
type Snapshot = serialization.Snapshot

// Save writes network to w as JSON.
func Save(w io.Writer, network *nn.Network, opts SnapshotOptions) error {
	return serialization.Encode(w, network, opts)
}

// Load reads a network written by Save and verifies its checksum.
func Load(r io.Reader) (*nn.Network, *Snapshot, error) {
	return serialization.Decode(r)
}

// SaveFile writes network to path, replacing it atomically.
func SaveFile(path string, network *nn.Network, opts SnapshotOptions) error {
	return serialization.SaveFile(path, network, opts)
}

// LoadFile reads a network from path.
func LoadFile(path string) (*nn.Network, *Snapshot, error) {
	return serialization.LoadFile(path)
}
