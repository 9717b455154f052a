package training

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/born-ml/neuralnet/internal/nn"
	"github.com/born-ml/neuralnet/internal/optim"
	"github.com/born-ml/neuralnet/internal/tensor"
)

// Defaults used by NewTrainer.
const (
	DefaultLearningRate = 0.5
	DefaultLogEvery     = 100
)

// EpochStats describes one finished epoch.
type EpochStats struct {
	Epoch   int
	Loss    float64
	Elapsed time.Duration
}

// Report summarizes a training run.
type Report struct {
	Epochs    int
	FinalLoss float64
	Duration  time.Duration
	Halt      string
}

// Trainer fits a network to a dataset by gradient descent.
//
// Example:
//
//	trainer, err := training.NewTrainer(network, samples,
//	    training.WithOptimizer(optim.NewSGD(optim.SGDConfig{LR: 0.5, Momentum: 0.9})),
//	)
//	if err := trainer.WithHaltCondition(training.Epochs(5000)); err != nil { ... }
//	report, err := trainer.Train(ctx)
type Trainer struct {
	network   *nn.Network
	inputs    *tensor.Tensor
	outputs   *tensor.Tensor
	optimizer optim.Optimizer
	loss      nn.Loss
	halt      HaltCondition
	batchSize int
	rng       *rand.Rand
	logger    zerolog.Logger
	logEvery  int
	progress  func(EpochStats)
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithOptimizer sets the optimizer. Default: SGD with learning rate 0.5.
func WithOptimizer(o optim.Optimizer) Option {
	return func(t *Trainer) { t.optimizer = o }
}

// WithLoss sets the loss function. Default: HalfSSE.
func WithLoss(l nn.Loss) Option {
	return func(t *Trainer) { t.loss = l }
}

// WithBatchSize splits every epoch into mini-batches of n samples.
// n <= 0 means full-batch gradient descent.
func WithBatchSize(n int) Option {
	return func(t *Trainer) { t.batchSize = n }
}

// WithShuffle reorders samples at the start of every epoch.
func WithShuffle(rng *rand.Rand) Option {
	return func(t *Trainer) { t.rng = rng }
}

// WithLogger sets the logger used for progress. Default: disabled.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Trainer) { t.logger = l }
}

// WithLogEvery logs progress every n epochs.
func WithLogEvery(n int) Option {
	return func(t *Trainer) {
		if n > 0 {
			t.logEvery = n
		}
	}
}

// WithProgress registers a callback invoked after every epoch.
func WithProgress(f func(EpochStats)) Option {
	return func(t *Trainer) { t.progress = f }
}

// NewTrainer prepares the training dataset and checks it against the
// network's topology. The default halt condition is Epochs(1).
func NewTrainer(network *nn.Network, samples []Sample, opts ...Option) (*Trainer, error) {
	inputs, outputs, err := PrepareDataset(samples)
	if err != nil {
		return nil, err
	}
	return NewTrainerFromTensors(network, inputs, outputs, opts...)
}

// NewTrainerFromTensors is NewTrainer for an already prepared dataset.
func NewTrainerFromTensors(network *nn.Network, inputs, outputs *tensor.Tensor, opts ...Option) (*Trainer, error) {
	if network == nil || len(network.Layers()) == 0 {
		return nil, nn.ErrNoLayers
	}
	if inputs.Rows() != outputs.Rows() {
		return nil, fmt.Errorf("%d input rows but %d output rows: %w", inputs.Rows(), outputs.Rows(), tensor.ErrShapeMismatch)
	}
	if inputs.Cols() != network.Inputs() {
		return nil, fmt.Errorf("dataset has %d inputs, network expects %d: %w", inputs.Cols(), network.Inputs(), tensor.ErrShapeMismatch)
	}
	if outputs.Cols() != network.Outputs() {
		return nil, fmt.Errorf("dataset has %d outputs, network produces %d: %w", outputs.Cols(), network.Outputs(), tensor.ErrShapeMismatch)
	}

	t := &Trainer{
		network:   network,
		inputs:    inputs,
		outputs:   outputs,
		optimizer: optim.NewSGD(optim.SGDConfig{LR: DefaultLearningRate}),
		loss:      nn.HalfSSE{},
		halt:      Epochs(1),
		logger:    zerolog.Nop(),
		logEvery:  DefaultLogEvery,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// WithHaltCondition replaces the halt condition. It rejects conditions that
// would stop before the first epoch.
func (t *Trainer) WithHaltCondition(h HaltCondition) error {
	if h == nil {
		return fmt.Errorf("halt condition is nil")
	}
	if err := h.Validate(); err != nil {
		return err
	}
	t.halt = h
	return nil
}

// Network returns the network being trained.
func (t *Trainer) Network() *nn.Network {
	return t.network
}

// Evaluate returns the loss of the network over the whole dataset.
func (t *Trainer) Evaluate() (float64, error) {
	predictions, err := t.network.Forward(t.inputs)
	if err != nil {
		return 0, err
	}
	return t.loss.Compute(predictions, t.outputs)
}

// Train runs epochs until the halt condition is met or ctx is done.
// On cancellation the partial report is returned together with ctx.Err().
func (t *Trainer) Train(ctx context.Context) (Report, error) {
	start := time.Now()
	report := Report{Halt: t.halt.String()}

	t.logger.Info().
		Str("halt", t.halt.String()).
		Str("optimizer", t.optimizer.Name()).
		Float64("lr", t.optimizer.LR()).
		Str("loss", t.loss.Name()).
		Int("samples", t.inputs.Rows()).
		Int("batch_size", t.batchSize).
		Msg("training started")

	for epoch := 1; ; epoch++ {
		if err := t.runEpoch(ctx); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}

		loss, err := t.Evaluate()
		if err != nil {
			report.Duration = time.Since(start)
			return report, err
		}

		stats := EpochStats{Epoch: epoch, Loss: loss, Elapsed: time.Since(start)}
		report.Epochs = epoch
		report.FinalLoss = loss
		report.Duration = stats.Elapsed

		if t.progress != nil {
			t.progress(stats)
		}
		if epoch%t.logEvery == 0 {
			t.logger.Debug().Int("epoch", epoch).Float64("loss", loss).Dur("elapsed", stats.Elapsed).Msg("epoch finished")
		}

		if t.halt.Done(epoch, loss, stats.Elapsed) {
			break
		}
	}

	t.logger.Info().
		Int("epochs", report.Epochs).
		Float64("loss", report.FinalLoss).
		Dur("duration", report.Duration).
		Msg("training finished")
	return report, nil
}

func (t *Trainer) runEpoch(ctx context.Context) error {
	n := t.inputs.Rows()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if t.rng != nil {
		t.rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	size := t.batchSize
	if size <= 0 || size > n {
		size = n
	}

	params := t.network.Parameters()
	for start := 0; start < n; start += size {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("training interrupted: %w", err)
		}

		idx := order[start:min(start+size, n)]
		x, y := t.inputs, t.outputs
		if len(idx) != n || t.rng != nil {
			var err error
			if x, err = gatherRows(t.inputs, idx); err != nil {
				return err
			}
			if y, err = gatherRows(t.outputs, idx); err != nil {
				return err
			}
		}

		if _, err := t.network.Backward(x, y, t.loss); err != nil {
			return err
		}
		t.optimizer.Step(params)
		t.optimizer.ZeroGrad(params)
	}
	return nil
}

func gatherRows(t *tensor.Tensor, idx []int) (*tensor.Tensor, error) {
	rows := make([][]float64, len(idx))
	for i, r := range idx {
		rows[i] = t.Row(r)
	}
	return tensor.FromRows(rows)
}
