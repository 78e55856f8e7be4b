package mdassets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/modules/mdinference"
)

// WritePlaceholder lays out a loadable asset directory for the given features:
// an identity scaler and a single sigmoid unit with zero weights, so every
// submission scores 0.5. Used for smoke runs before a trained model exists.
func WritePlaceholder(dir string, names []string) error {
	features, err := etassessment.NewFeatureSpec(names)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	raw, err := json.Marshal(append([]string(features), "target"))
	if err != nil {
		return fmt.Errorf("marshal feature names: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FeaturesFile), raw, 0o644); err != nil {
		return err
	}

	n := len(features)
	scaler := struct {
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	}{Mean: make([]float64, n), Scale: make([]float64, n)}
	for i := range scaler.Scale {
		scaler.Scale[i] = 1
	}
	raw, err = json.Marshal(scaler)
	if err != nil {
		return fmt.Errorf("marshal scaler: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ScalerFile), raw, 0o644); err != nil {
		return err
	}

	return mdinference.SaveTFJSModel(filepath.Join(dir, ModelDir), []*mdinference.DenseLayer{{
		Name:       "dense",
		In:         n,
		Units:      1,
		Kernel:     make([]float64, n),
		Bias:       []float64{0},
		Activation: mdinference.ActivationSigmoid,
	}})
}
