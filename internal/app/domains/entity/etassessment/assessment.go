package etassessment

import (
	"errors"
	"strings"
)

// TargetField is the label column excluded from the form and the feature vector.
const TargetField = "target"

// DecisionThreshold separates Positive from Negative (strictly greater than).
const DecisionThreshold = 0.5

var (
	ErrEmptyFeatureSpec   = errors.New("feature spec cannot be empty")
	ErrDuplicateFeature   = errors.New("duplicate feature name")
	ErrScalerLenMismatch  = errors.New("scaler mean/scale length mismatch")
	ErrNilClassifierInput = errors.New("classifier is required")
)

// FeatureSpec is the ordered list of feature names the scaler and classifier were fitted on.
type FeatureSpec []string

// NewFeatureSpec drops the target column and rejects empty or duplicated names.
func NewFeatureSpec(names []string) (FeatureSpec, error) {
	spec := make(FeatureSpec, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || name == TargetField {
			continue
		}
		if _, ok := seen[name]; ok {
			return nil, ErrDuplicateFeature
		}
		seen[name] = struct{}{}
		spec = append(spec, name)
	}
	if len(spec) == 0 {
		return nil, ErrEmptyFeatureSpec
	}
	return spec, nil
}

// Bound is an inclusive numeric range.
type Bound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// MedicalConstraints maps a subset of features to their allowed range.
type MedicalConstraints map[string]Bound

// DefaultHeartConstraints are the bounds applied to the heart disease form.
func DefaultHeartConstraints() MedicalConstraints {
	return MedicalConstraints{
		"age":      {Min: 0, Max: 120},
		"trestbps": {Min: 50, Max: 250},
		"chol":     {Min: 100, Max: 600},
		"thalach":  {Min: 60, Max: 220},
		"oldpeak":  {Min: 0, Max: 10},
	}
}

// CategoricalField maps a string field to 1 when it equals Positive (case-insensitive), else 0.
type CategoricalField struct {
	Name     string
	Positive string
}

// Encode applies the mapping to a non-empty raw value.
func (c CategoricalField) Encode(raw string) float64 {
	if strings.EqualFold(strings.TrimSpace(raw), c.Positive) {
		return 1
	}
	return 0
}

// DefaultSexField maps "male" to 1 and anything else to 0.
func DefaultSexField() CategoricalField {
	return CategoricalField{Name: "sex", Positive: "male"}
}

// ScalerParams holds the per-feature standardization parameters.
type ScalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Len returns the feature count, or -1 when mean and scale disagree.
func (p ScalerParams) Len() int {
	if len(p.Mean) != len(p.Scale) {
		return -1
	}
	return len(p.Mean)
}

// FeatureVector is an ordered numeric row in FeatureSpec order.
type FeatureVector []float64

// RawSubmission is the client-supplied field map.
type RawSubmission map[string]string

// Label is the binary decision.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
)

// DisplayClass returns the visual class used by the result banner.
func (l Label) DisplayClass() string {
	if l == LabelPositive {
		return "danger"
	}
	return "success"
}

// PredictionResult is derived per request and never persisted.
type PredictionResult struct {
	Probability float64
	Label       Label
}

// Classify thresholds a probability.
func Classify(probability float64) PredictionResult {
	label := LabelNegative
	if probability > DecisionThreshold {
		label = LabelPositive
	}
	return PredictionResult{Probability: probability, Label: label}
}

// Percent returns the probability as a percentage for display.
func (r PredictionResult) Percent() float64 {
	return r.Probability * 100
}
