package serialization

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/born-ml/neuralnet/internal/activation"
	"github.com/born-ml/neuralnet/internal/nn"
	"github.com/born-ml/neuralnet/internal/tensor"
)

// Limits applied when decoding untrusted snapshots.
const (
	MaxLayers       = 1024
	MaxLayerNeurons = 1 << 16
)

// NewSnapshot captures the topology and parameters of network.
func NewSnapshot(network *nn.Network, opts Options) (*Snapshot, error) {
	if network == nil || len(network.Layers()) == 0 {
		return nil, nn.ErrNoLayers
	}

	snap := &Snapshot{
		Magic:         Magic,
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Topology:      Topology{Inputs: network.Inputs()},
		InputScale:    opts.InputScale,
		OutputScale:   opts.OutputScale,
		Metadata:      opts.Metadata,
	}
	for _, l := range network.Layers() {
		snap.Topology.Layers = append(snap.Topology.Layers, LayerMeta{
			Neurons:    l.Neurons(),
			Activation: l.Activation().Name(),
		})
	}

	state := network.StateDict()
	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := state[name]
		snap.Tensors = append(snap.Tensors, TensorRecord{
			Name:  name,
			Shape: []int(t.Shape().Clone()),
			Data:  append([]float64(nil), t.Data()...),
		})
	}
	snap.Checksum = ComputeChecksum(snap.Tensors)
	return snap, nil
}

// Validate checks the header, the topology and the checksum.
func (s *Snapshot) Validate() error {
	if s.Magic != Magic {
		return fmt.Errorf("%w: got %q, expected %q", ErrInvalidMagic, s.Magic, Magic)
	}
	if s.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: %d (supported: %d)", ErrUnsupportedVersion, s.FormatVersion, FormatVersion)
	}
	if s.Topology.Inputs <= 0 || s.Topology.Inputs > MaxLayerNeurons {
		return &ValidationError{Type: "invalid_topology", Details: fmt.Sprintf("inputs %d out of range [1, %d]", s.Topology.Inputs, MaxLayerNeurons)}
	}
	if n := len(s.Topology.Layers); n == 0 || n > MaxLayers {
		return &ValidationError{Type: "invalid_topology", Details: fmt.Sprintf("layer count %d out of range [1, %d]", n, MaxLayers)}
	}
	for i, l := range s.Topology.Layers {
		if l.Neurons <= 0 || l.Neurons > MaxLayerNeurons {
			return &ValidationError{Type: "invalid_topology", Details: fmt.Sprintf("layer %d has %d neurons", i, l.Neurons)}
		}
		if _, err := activation.ByName(l.Activation); err != nil {
			return &ValidationError{Type: "invalid_topology", Details: fmt.Sprintf("layer %d: %v", i, err)}
		}
	}
	if err := ValidateChecksum(s.Tensors, s.Checksum); err != nil {
		return err
	}
	if n := len(s.InputScale); n != 0 && n != s.Topology.Inputs {
		return &ValidationError{Type: "invalid_scale", Details: fmt.Sprintf("input scale has %d entries, network has %d inputs", n, s.Topology.Inputs)}
	}
	outputs := s.Topology.Layers[len(s.Topology.Layers)-1].Neurons
	if n := len(s.OutputScale); n != 0 && n != outputs {
		return &ValidationError{Type: "invalid_scale", Details: fmt.Sprintf("output scale has %d entries, network has %d outputs", n, outputs)}
	}
	if err := validateScale("input", s.InputScale); err != nil {
		return err
	}
	return validateScale("output", s.OutputScale)
}

// validateScale rejects divisors that would turn predictions into Inf or NaN.
func validateScale(kind string, scale []float64) error {
	for i, v := range scale {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{Type: "invalid_scale", Details: fmt.Sprintf("%s scale entry %d is %v, must be positive and finite", kind, i, v)}
		}
	}
	return nil
}

// Network rebuilds the network described by the snapshot.
func (s *Snapshot) Network() (*nn.Network, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	state := make(map[string]*tensor.Tensor, len(s.Tensors))
	for _, rec := range s.Tensors {
		if _, dup := state[rec.Name]; dup {
			return nil, &ValidationError{Type: "duplicate_tensor", Tensor: rec.Name, Details: "tensor appears more than once"}
		}
		t, err := tensor.FromSlice(rec.Data, tensor.Shape(rec.Shape))
		if err != nil {
			return nil, &ValidationError{Type: "invalid_tensor", Tensor: rec.Name, Details: err.Error()}
		}
		state[rec.Name] = t
	}
	if want := 2 * len(s.Topology.Layers); len(state) != want {
		return nil, &ValidationError{Type: "tensor_count", Details: fmt.Sprintf("expected %d tensors, got %d", want, len(state))}
	}

	layers := make([]*nn.Layer, 0, len(s.Topology.Layers))
	inputs := s.Topology.Inputs
	for i, meta := range s.Topology.Layers {
		act, err := activation.ByName(meta.Activation)
		if err != nil {
			return nil, err
		}
		weight, err := stateTensor(state, fmt.Sprintf("%d.weight", i), tensor.Shape{inputs, meta.Neurons})
		if err != nil {
			return nil, err
		}
		bias, err := stateTensor(state, fmt.Sprintf("%d.bias", i), tensor.Shape{1, meta.Neurons})
		if err != nil {
			return nil, err
		}
		layer, err := nn.NewLayer(act, weight, bias)
		if err != nil {
			return nil, &ValidationError{Type: "state_mismatch", Details: err.Error()}
		}
		layers = append(layers, layer)
		inputs = meta.Neurons
	}

	return nn.NewNetwork(layers...)
}

func stateTensor(state map[string]*tensor.Tensor, name string, want tensor.Shape) (*tensor.Tensor, error) {
	t, ok := state[name]
	if !ok {
		return nil, &ValidationError{Type: "state_mismatch", Tensor: name, Details: "tensor missing"}
	}
	if !t.Shape().Equal(want) {
		return nil, &ValidationError{Type: "state_mismatch", Tensor: name, Details: fmt.Sprintf("shape %v, topology expects %v", t.Shape(), want)}
	}
	return t, nil
}

// Encode writes a snapshot of network to w as indented JSON.
func Encode(w io.Writer, network *nn.Network, opts Options) error {
	snap, err := NewSnapshot(network, opts)
	if err != nil {
		return err
	}
	data, err := sonic.ConfigStd.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot from r and rebuilds its network.
func Decode(r io.Reader) (*nn.Network, *Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := sonic.ConfigStd.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	network, err := snap.Network()
	if err != nil {
		return nil, nil, err
	}
	return network, &snap, nil
}

// SaveFile writes a snapshot to path. The file is written next to its
// destination first and renamed into place.
func SaveFile(path string, network *nn.Network, opts Options) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // no-op after a successful rename

	if err := Encode(f, network, opts); err != nil {
		f.Close() //nolint:errcheck,gosec // encode error takes precedence
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadFile reads a snapshot from path.
func LoadFile(path string) (*nn.Network, *Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	return Decode(f)
}
