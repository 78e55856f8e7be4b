package mdvalidate

import (
	"math"
	"strconv"
	"strings"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/pkg/errorx"
)

// Result is either a vector or the first field error, never both.
type Result struct {
	Vector etassessment.FeatureVector
	Err    *errorx.FieldError
}

// OK reports whether validation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Validator turns a raw submission into a feature vector.
type Validator struct {
	features    etassessment.FeatureSpec
	constraints etassessment.MedicalConstraints
	categorical map[string]etassessment.CategoricalField
}

// NewValidator builds a validator for one assessment.
func NewValidator(a *etassessment.Assessment) *Validator {
	return &Validator{
		features:    a.Features,
		constraints: a.Constraints,
		categorical: a.Categorical,
	}
}

// Validate walks the feature list in order and stops at the first failing field.
func (v *Validator) Validate(raw etassessment.RawSubmission) Result {
	vector := make(etassessment.FeatureVector, 0, len(v.features))

	for _, field := range v.features {
		value := strings.TrimSpace(raw[field])
		if value == "" {
			return Result{Err: errorx.MissingField(field)}
		}

		if cat, ok := v.categorical[field]; ok {
			vector = append(vector, cat.Encode(value))
			continue
		}

		num, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
			return Result{Err: errorx.NonNumericField(field)}
		}

		if bound, ok := v.constraints[field]; ok && !bound.Contains(num) {
			return Result{Err: errorx.OutOfRange(field, bound.Min, bound.Max)}
		}

		vector = append(vector, num)
	}

	return Result{Vector: vector}
}
