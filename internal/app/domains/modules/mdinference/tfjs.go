package mdinference

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ModelFile is the TF.js layers-model descriptor inside a model directory.
const ModelFile = "model.json"

type tfjsModel struct {
	Format          string             `json:"format"`
	ModelTopology   json.RawMessage    `json:"modelTopology"`
	WeightsManifest []tfjsWeightsGroup `json:"weightsManifest"`
}

type tfjsWeightsGroup struct {
	Paths   []string         `json:"paths"`
	Weights []tfjsWeightSpec `json:"weights"`
}

type tfjsWeightSpec struct {
	Name         string          `json:"name"`
	Shape        []int           `json:"shape"`
	Dtype        string          `json:"dtype"`
	Quantization json.RawMessage `json:"quantization,omitempty"`
}

type kerasModelConfig struct {
	ClassName string          `json:"class_name"`
	Config    json.RawMessage `json:"config"`
}

type kerasLayer struct {
	ClassName string `json:"class_name"`
	Config    struct {
		Name       string `json:"name"`
		Units      int    `json:"units"`
		Activation string `json:"activation"`
		UseBias    *bool  `json:"use_bias"`
	} `json:"config"`
}

// LoadTFJSModel reads a Keras Sequential model exported with the TF.js converter
// (model.json + binary weight shards) from dir.
func LoadTFJSModel(dir string) (*Network, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ModelFile))
	if err != nil {
		return nil, err
	}

	var model tfjsModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ModelFile, err)
	}
	if model.Format != "" && model.Format != "layers-model" {
		return nil, fmt.Errorf("unsupported model format %q", model.Format)
	}

	layers, err := parseTopology(model.ModelTopology)
	if err != nil {
		return nil, err
	}

	weights, err := readWeights(dir, model.WeightsManifest)
	if err != nil {
		return nil, err
	}

	return buildNetwork(layers, weights)
}

func parseTopology(raw json.RawMessage) ([]kerasLayer, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("model topology is missing")
	}

	// Newer exports nest the model under "model_config".
	var wrapper struct {
		ModelConfig *kerasModelConfig `json:"model_config"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}

	var top kerasModelConfig
	if wrapper.ModelConfig != nil {
		top = *wrapper.ModelConfig
	} else if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}

	if top.ClassName != "Sequential" {
		return nil, fmt.Errorf("unsupported model class %q, want Sequential", top.ClassName)
	}

	// Keras 2.2+ stores {"name":..., "layers":[...]}; older versions store the list directly.
	var layers []kerasLayer
	trimmed := bytes.TrimSpace(top.Config)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &layers); err != nil {
			return nil, fmt.Errorf("parse layers: %w", err)
		}
	} else {
		var cfg struct {
			Layers []kerasLayer `json:"layers"`
		}
		if err := json.Unmarshal(trimmed, &cfg); err != nil {
			return nil, fmt.Errorf("parse layers: %w", err)
		}
		layers = cfg.Layers
	}

	return layers, nil
}

type tensor struct {
	shape  []int
	values []float64
}

func readWeights(dir string, manifest []tfjsWeightsGroup) (map[string]tensor, error) {
	out := make(map[string]tensor)

	for _, group := range manifest {
		var buf []byte
		for _, p := range group.Paths {
			chunk, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(p)))
			if err != nil {
				return nil, fmt.Errorf("read weight shard: %w", err)
			}
			buf = append(buf, chunk...)
		}

		offset := 0
		for _, spec := range group.Weights {
			if spec.Dtype != "" && spec.Dtype != "float32" {
				return nil, fmt.Errorf("weight %s: unsupported dtype %s", spec.Name, spec.Dtype)
			}
			if len(spec.Quantization) > 0 && string(spec.Quantization) != "null" {
				return nil, fmt.Errorf("weight %s: quantized weights are not supported", spec.Name)
			}

			remaining := (len(buf) - offset) / 4
			n := 1
			for _, d := range spec.Shape {
				if d <= 0 {
					return nil, fmt.Errorf("weight %s: invalid shape %v", spec.Name, spec.Shape)
				}
				if n > remaining/d {
					return nil, fmt.Errorf("weight %s: shard data truncated", spec.Name)
				}
				n *= d
			}
			size := n * 4
			if offset+size > len(buf) {
				return nil, fmt.Errorf("weight %s: shard data truncated", spec.Name)
			}

			values := make([]float64, n)
			for i := 0; i < n; i++ {
				bits := binary.LittleEndian.Uint32(buf[offset+i*4:])
				values[i] = float64(math.Float32frombits(bits))
			}
			offset += size

			out[spec.Name] = tensor{shape: spec.Shape, values: values}
		}
	}

	return out, nil
}

func lookupWeight(weights map[string]tensor, layer, kind string) (tensor, bool) {
	suffix := layer + "/" + kind
	if t, ok := weights[suffix]; ok {
		return t, true
	}
	for name, t := range weights {
		if strings.HasSuffix(name, "/"+suffix) {
			return t, true
		}
	}
	return tensor{}, false
}

func buildNetwork(layers []kerasLayer, weights map[string]tensor) (*Network, error) {
	var dense []*DenseLayer

	for _, l := range layers {
		switch l.ClassName {
		case "InputLayer", "Dropout", "Flatten", "GaussianNoise", "ActivityRegularization":
			continue
		case "Dense":
		default:
			return nil, fmt.Errorf("unsupported layer %s (%s)", l.Config.Name, l.ClassName)
		}

		act, err := parseActivation(l.Config.Activation)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Config.Name, err)
		}

		kernel, ok := lookupWeight(weights, l.Config.Name, "kernel")
		if !ok {
			return nil, fmt.Errorf("layer %s: kernel weights not found", l.Config.Name)
		}
		if len(kernel.shape) != 2 {
			return nil, fmt.Errorf("layer %s: kernel must be 2-D, got %v", l.Config.Name, kernel.shape)
		}

		layer := &DenseLayer{
			Name:       l.Config.Name,
			In:         kernel.shape[0],
			Units:      kernel.shape[1],
			Kernel:     kernel.values,
			Activation: act,
		}
		if l.Config.Units != 0 && l.Config.Units != layer.Units {
			return nil, fmt.Errorf("layer %s: config declares %d units, kernel has %d", layer.Name, l.Config.Units, layer.Units)
		}

		useBias := l.Config.UseBias == nil || *l.Config.UseBias
		if useBias {
			bias, ok := lookupWeight(weights, l.Config.Name, "bias")
			if !ok {
				return nil, fmt.Errorf("layer %s: bias weights not found", l.Config.Name)
			}
			layer.Bias = bias.values
		}

		dense = append(dense, layer)
	}

	return NewNetwork(dense)
}
