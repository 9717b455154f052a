package config

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/neuralnet/internal/activation"
	"github.com/born-ml/neuralnet/internal/nn"
	"github.com/born-ml/neuralnet/internal/optim"
	"github.com/born-ml/neuralnet/internal/training"
)

// Topology is a network description plus its training setup and dataset,
// as read from a YAML file.
type Topology struct {
	Inputs   int          `yaml:"inputs"`
	Seed     int64        `yaml:"seed,omitempty"`
	Init     string       `yaml:"init,omitempty"`
	Layers   []LayerSpec  `yaml:"layers,omitempty"`
	Output   LayerSpec    `yaml:"output"`
	Training TrainingSpec `yaml:"training"`
	Dataset  []SampleSpec `yaml:"dataset"`
}

// LayerSpec describes one dense layer.
type LayerSpec struct {
	Neurons    int    `yaml:"neurons"`
	Activation string `yaml:"activation"`
}

// TrainingSpec configures the trainer.
type TrainingSpec struct {
	Epochs       uint          `yaml:"epochs"`
	LossBelow    float64       `yaml:"loss_below,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	Optimizer    string        `yaml:"optimizer,omitempty"`
	LearningRate float64       `yaml:"learning_rate,omitempty"`
	Momentum     float64       `yaml:"momentum,omitempty"`
	Loss         string        `yaml:"loss,omitempty"`
	BatchSize    int           `yaml:"batch_size,omitempty"`
	Shuffle      bool          `yaml:"shuffle,omitempty"`
	Normalize    bool          `yaml:"normalize,omitempty"`
	LogEvery     int           `yaml:"log_every,omitempty"`
}

// SampleSpec is one dataset row.
type SampleSpec struct {
	Inputs  []float64 `yaml:"inputs"`
	Outputs []float64 `yaml:"outputs"`
}

// LoadTopology reads and validates a topology file.
func LoadTopology(path string) (*Topology, error) {
	const op = "config.load_topology"

	b, err := os.ReadFile(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return nil, &OpError{Op: op, Kind: KindNotFound, Path: path, Err: err}
	}
	t, err := ParseTopology(b)
	if err != nil {
		if oe, ok := err.(*OpError); ok {
			oe.Op, oe.Path = op, path
		}
		return nil, err
	}
	return t, nil
}

// ParseTopology decodes and validates a topology document.
func ParseTopology(b []byte) (*Topology, error) {
	const op = "config.parse_topology"

	var t Topology
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, &OpError{Op: op, Kind: KindInvalidConfig, Err: err}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the topology, the training setup and the dataset widths.
func (t *Topology) Validate() error {
	const op = "config.validate_topology"

	if t.Inputs <= 0 {
		return invalid(op, "", "inputs must be positive, got %d", t.Inputs)
	}
	for i, l := range t.allLayers() {
		if l.Neurons <= 0 {
			return invalid(op, "", "layer %d: neurons must be positive, got %d", i, l.Neurons)
		}
		if _, err := activation.ByName(l.Activation); err != nil {
			return invalid(op, "", "layer %d: %w", i, err)
		}
	}
	if _, err := t.initializer(); err != nil {
		return invalid(op, "", "%w", err)
	}

	if _, err := t.HaltCondition(); err != nil {
		return invalid(op, "", "training: %w", err)
	}
	if _, err := t.optimizer(); err != nil {
		return invalid(op, "", "training: %w", err)
	}
	if _, err := t.loss(); err != nil {
		return invalid(op, "", "training: %w", err)
	}
	if t.Training.LearningRate < 0 {
		return invalid(op, "", "training: learning rate must not be negative, got %v", t.Training.LearningRate)
	}

	if len(t.Dataset) == 0 {
		return invalid(op, "", "dataset: %w", training.ErrEmptyDataset)
	}
	for i, s := range t.Dataset {
		if len(s.Inputs) != t.Inputs {
			return invalid(op, "", "dataset row %d: %d inputs, expected %d", i, len(s.Inputs), t.Inputs)
		}
		if len(s.Outputs) != t.Output.Neurons {
			return invalid(op, "", "dataset row %d: %d outputs, expected %d", i, len(s.Outputs), t.Output.Neurons)
		}
	}
	return nil
}

func (t *Topology) allLayers() []LayerSpec {
	return append(append([]LayerSpec(nil), t.Layers...), t.Output)
}

func (t *Topology) initializer() (nn.Initializer, error) {
	switch strings.ToLower(t.Init) {
	case "", "xavier":
		return nn.Xavier{}, nil
	case "uniform":
		return nn.RandomUniform{Low: -1, High: 1}, nil
	case "normal":
		return nn.RandomNormal{StdDev: 1}, nil
	default:
		return nil, fmt.Errorf("unknown initializer %q", t.Init)
	}
}

// Rand returns a generator seeded from the topology, or from fallback when
// the topology has no seed. A zero fallback seeds from the clock.
func (t *Topology) Rand(fallback int64) *rand.Rand {
	seed := t.Seed
	if seed == 0 {
		seed = fallback
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // weights do not need crypto randomness
}

// Build creates a network with randomly initialized weights.
func (t *Topology) Build(rng *rand.Rand) (*nn.Network, error) {
	weights, err := t.initializer()
	if err != nil {
		return nil, err
	}
	b := nn.NewBuilder(t.Inputs).WithRand(rng).WithInitializer(weights)
	for _, l := range t.Layers {
		act, err := activation.ByName(l.Activation)
		if err != nil {
			return nil, err
		}
		b = b.Layer(l.Neurons, act)
	}
	act, err := activation.ByName(t.Output.Activation)
	if err != nil {
		return nil, err
	}
	return b.Output(t.Output.Neurons, act)
}

// Samples converts the dataset into training samples.
func (t *Topology) Samples() []training.Sample {
	samples := make([]training.Sample, len(t.Dataset))
	for i, s := range t.Dataset {
		samples[i] = training.NewSample(s.Inputs, s.Outputs)
	}
	return samples
}

// HaltCondition picks Timeout when a timeout is set, LossBelow when a loss
// threshold is set and Epochs otherwise. Epochs bounds all three.
func (t *Topology) HaltCondition() (training.HaltCondition, error) {
	var h training.HaltCondition
	switch {
	case t.Training.Timeout > 0:
		h = training.Timeout{Duration: t.Training.Timeout, MaxEpochs: t.Training.Epochs}
	case t.Training.LossBelow > 0:
		h = training.LossBelow{Threshold: t.Training.LossBelow, MaxEpochs: t.Training.Epochs}
	default:
		h = training.Epochs(t.Training.Epochs)
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// TrainerOptions translates the training section into trainer options.
// rng is used for shuffling when enabled.
func (t *Topology) TrainerOptions(rng *rand.Rand) ([]training.Option, error) {
	opt, err := t.optimizer()
	if err != nil {
		return nil, err
	}
	loss, err := t.loss()
	if err != nil {
		return nil, err
	}

	opts := []training.Option{
		training.WithOptimizer(opt),
		training.WithLoss(loss),
		training.WithBatchSize(t.Training.BatchSize),
	}
	if t.Training.Shuffle {
		opts = append(opts, training.WithShuffle(rng))
	}
	if t.Training.LogEvery > 0 {
		opts = append(opts, training.WithLogEvery(t.Training.LogEvery))
	}
	return opts, nil
}

func (t *Topology) optimizer() (optim.Optimizer, error) {
	name := strings.ToLower(strings.TrimSpace(t.Training.Optimizer))
	// Adam picks its own default step size.
	lr := t.Training.LearningRate
	if lr == 0 && name != "adam" {
		lr = training.DefaultLearningRate
	}
	return optim.ByName(name, optim.Config{LR: lr, Momentum: t.Training.Momentum})
}

func (t *Topology) loss() (nn.Loss, error) {
	if t.Training.Loss == "" {
		return nn.HalfSSE{}, nil
	}
	return nn.LossByName(t.Training.Loss)
}
