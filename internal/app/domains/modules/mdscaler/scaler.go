package mdscaler

import (
	"fmt"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/pkg/errorx"
)

// Transform standardizes vec elementwise: (x - mean) / scale.
// The input is left untouched.
func Transform(vec etassessment.FeatureVector, params etassessment.ScalerParams) (etassessment.FeatureVector, error) {
	if len(params.Mean) == 0 || len(params.Scale) == 0 {
		return nil, &errorx.ScalerConfigError{Err: errorx.ErrScalerParamsMissing}
	}
	if len(params.Mean) != len(vec) || len(params.Scale) != len(vec) {
		return nil, &errorx.ScalerConfigError{
			Err: fmt.Errorf("vector has %d values, mean %d, scale %d", len(vec), len(params.Mean), len(params.Scale)),
		}
	}

	out := make(etassessment.FeatureVector, len(vec))
	for i, x := range vec {
		out[i] = (x - params.Mean[i]) / params.Scale[i]
	}
	return out, nil
}
