package mdinference

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// WeightsFile is the single shard written by SaveTFJSModel.
const WeightsFile = "group1-shard1of1.bin"

// SaveTFJSModel writes layers as a TF.js layers-model directory that LoadTFJSModel can read.
// Weights are narrowed to float32.
func SaveTFJSModel(dir string, layers []*DenseLayer) error {
	if _, err := NewNetwork(layers); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	type layerJSON struct {
		ClassName string         `json:"class_name"`
		Config    map[string]any `json:"config"`
	}

	topoLayers := make([]layerJSON, 0, len(layers))
	specs := make([]tfjsWeightSpec, 0, 2*len(layers))
	var data []byte

	appendValues := func(vals []float64) {
		for _, v := range vals {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v)))
		}
	}

	for i, l := range layers {
		cfg := map[string]any{
			"name":       l.Name,
			"units":      l.Units,
			"activation": string(l.Activation),
			"use_bias":   l.Bias != nil,
		}
		if i == 0 {
			cfg["batch_input_shape"] = []any{nil, l.In}
		}
		topoLayers = append(topoLayers, layerJSON{ClassName: "Dense", Config: cfg})

		specs = append(specs, tfjsWeightSpec{Name: l.Name + "/kernel", Shape: []int{l.In, l.Units}, Dtype: "float32"})
		appendValues(l.Kernel)
		if l.Bias != nil {
			specs = append(specs, tfjsWeightSpec{Name: l.Name + "/bias", Shape: []int{l.Units}, Dtype: "float32"})
			appendValues(l.Bias)
		}
	}

	topology, err := json.Marshal(map[string]any{
		"class_name": "Sequential",
		"config":     map[string]any{"name": "sequential", "layers": topoLayers},
	})
	if err != nil {
		return fmt.Errorf("marshal topology: %w", err)
	}

	model := tfjsModel{
		Format:        "layers-model",
		ModelTopology: topology,
		WeightsManifest: []tfjsWeightsGroup{
			{Paths: []string{WeightsFile}, Weights: specs},
		},
	}
	raw, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, WeightsFile), data, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ModelFile), raw, 0o644)
}
