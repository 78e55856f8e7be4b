package etassessment

import (
	"context"
	"fmt"
)

// Classifier runs a forward pass over one scaled row and returns P(positive).
type Classifier interface {
	Predict(ctx context.Context, row []float64) (float64, error)
	InputWidth() int
}

// Assessment bundles the read-only state needed to score one disease model.
// It is built once at startup and shared by all requests.
type Assessment struct {
	Name             string
	Title            string
	Features         FeatureSpec
	Constraints      MedicalConstraints
	Categorical      map[string]CategoricalField
	Scaler           ScalerParams
	Classifier       Classifier
	Weight           float64
	CriticalOverride bool
}

// NewAssessment checks the cross-asset invariants: scaler and classifier widths
// must match the feature list.
func NewAssessment(name string, features FeatureSpec, scaler ScalerParams, classifier Classifier) (*Assessment, error) {
	if len(features) == 0 {
		return nil, ErrEmptyFeatureSpec
	}
	if scaler.Len() != len(features) {
		return nil, fmt.Errorf("%w: mean=%d scale=%d features=%d",
			ErrScalerLenMismatch, len(scaler.Mean), len(scaler.Scale), len(features))
	}
	if classifier == nil {
		return nil, ErrNilClassifierInput
	}
	if w := classifier.InputWidth(); w > 0 && w != len(features) {
		return nil, fmt.Errorf("classifier expects %d inputs, feature list has %d", w, len(features))
	}

	return &Assessment{
		Name:        name,
		Title:       name,
		Features:    features,
		Constraints: MedicalConstraints{},
		Categorical: map[string]CategoricalField{},
		Scaler:      scaler,
		Classifier:  classifier,
		Weight:      1,
	}, nil
}

// IsCategorical returns the categorical mapping for field, if any.
func (a *Assessment) IsCategorical(field string) (CategoricalField, bool) {
	c, ok := a.Categorical[field]
	return c, ok
}

// Bound returns the configured range for field, if any.
func (a *Assessment) Bound(field string) (Bound, bool) {
	b, ok := a.Constraints[field]
	return b, ok
}
