// Package serialization saves and restores trained networks.
//
// A snapshot is a single JSON document:
//
//	{
//	  "magic": "neuralnet",
//	  "format_version": 1,
//	  "created_at": "...",
//	  "topology": {"inputs": 2, "layers": [{"neurons": 3, "activation": "sigmoid"}, ...]},
//	  "tensors": [{"name": "0.bias", "shape": [1, 3], "data": [...]}, ...],
//	  "input_scale": [...], "output_scale": [...],
//	  "metadata": {...},
//	  "checksum": "<hex sha256 of the tensor payload>"
//	}
//
// Tensors are sorted by name and the checksum covers their names, shapes and
// IEEE-754 bits, so any edit to the weights is detected on load.
package serialization

import (
	"time"
)

// Format constants.
const (
	Magic         = "neuralnet"
	FormatVersion = 1
)

// Snapshot is the on-disk representation of a network.
type Snapshot struct {
	Magic         string            `json:"magic"`
	FormatVersion int               `json:"format_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Topology      Topology          `json:"topology"`
	Tensors       []TensorRecord    `json:"tensors"`
	InputScale    []float64         `json:"input_scale,omitempty"`
	OutputScale   []float64         `json:"output_scale,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Checksum      string            `json:"checksum"`
}

// Topology describes the network architecture.
type Topology struct {
	Inputs int         `json:"inputs"`
	Layers []LayerMeta `json:"layers"`
}

// LayerMeta describes one layer.
type LayerMeta struct {
	Neurons    int    `json:"neurons"`
	Activation string `json:"activation"`
}

// TensorRecord holds one named parameter tensor.
type TensorRecord struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// Options carries optional snapshot content.
type Options struct {
	InputScale  []float64
	OutputScale []float64
	Metadata    map[string]string
}
