package mdassets

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/modules/mdinference"
	"cardia/riskapi/internal/app/pkg/errorx"
)

// Fixed locations inside an assessment's asset directory.
const (
	ModelDir     = "model"
	ScalerFile   = "scaler.json"
	FeaturesFile = "feature_names.json"
)

// Bundle is the raw output of a successful load.
type Bundle struct {
	Features   etassessment.FeatureSpec
	Scaler     etassessment.ScalerParams
	Classifier etassessment.Classifier
}

// Load reads the classifier, scaler and feature list under dir.
// Any failure is an *errorx.AssetLoadError; there is no partial result.
func Load(dir string) (*Bundle, error) {
	featuresPath := filepath.Join(dir, FeaturesFile)
	features, err := LoadFeatures(featuresPath)
	if err != nil {
		return nil, errorx.NewAssetLoadError("features", featuresPath, err)
	}

	scalerPath := filepath.Join(dir, ScalerFile)
	scaler, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, errorx.NewAssetLoadError("scaler", scalerPath, err)
	}
	if scaler.Len() != len(features) {
		return nil, errorx.NewAssetLoadError("scaler", scalerPath,
			fmt.Errorf("%d scaler entries for %d features", len(scaler.Mean), len(features)))
	}

	modelPath := filepath.Join(dir, ModelDir)
	network, err := mdinference.LoadTFJSModel(modelPath)
	if err != nil {
		return nil, errorx.NewAssetLoadError("model", modelPath, err)
	}
	if network.InputWidth() != len(features) {
		return nil, errorx.NewAssetLoadError("model", modelPath,
			fmt.Errorf("model expects %d inputs, feature list has %d", network.InputWidth(), len(features)))
	}

	return &Bundle{Features: features, Scaler: scaler, Classifier: network}, nil
}

// LoadFeatures reads a JSON array of names and drops "target".
func LoadFeatures(path string) (etassessment.FeatureSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("parse feature names: %w", err)
	}

	return etassessment.NewFeatureSpec(names)
}

// LoadScaler reads {"mean": [...], "scale": [...]}. Both keys are required,
// lengths must agree, and every scale must be finite and non-zero.
func LoadScaler(path string) (etassessment.ScalerParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return etassessment.ScalerParams{}, err
	}

	var doc struct {
		Mean  *[]float64 `json:"mean"`
		Scale *[]float64 `json:"scale"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return etassessment.ScalerParams{}, fmt.Errorf("parse scaler: %w", err)
	}
	if doc.Mean == nil || doc.Scale == nil {
		return etassessment.ScalerParams{}, errors.New(`scaler must contain "mean" and "scale"`)
	}

	params := etassessment.ScalerParams{Mean: *doc.Mean, Scale: *doc.Scale}
	if params.Len() < 0 {
		return etassessment.ScalerParams{}, etassessment.ErrScalerLenMismatch
	}
	for i, s := range params.Scale {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return etassessment.ScalerParams{}, fmt.Errorf("scale[%d] = %v cannot standardize", i, s)
		}
	}

	return params, nil
}
