package response

import (
	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/modules/mdrisk"
)

func FromPredictionResult(name string, r etassessment.PredictionResult) *PredictResponse {
	return &PredictResponse{
		Assessment:  name,
		Label:       string(r.Label),
		Class:       r.Label.DisplayClass(),
		Probability: r.Probability,
		Percent:     r.Percent(),
	}
}

func FromAssessment(a *etassessment.Assessment) *AssessmentResponse {
	resp := &AssessmentResponse{
		Name:     a.Name,
		Title:    a.Title,
		Features: append([]string(nil), a.Features...),
		Weight:   a.Weight,
	}
	if len(a.Categorical) > 0 {
		resp.Categorical = make(map[string]string, len(a.Categorical))
		for name, c := range a.Categorical {
			resp.Categorical[name] = c.Positive
		}
	}
	if len(a.Constraints) > 0 {
		resp.Constraints = make(map[string]etassessment.Bound, len(a.Constraints))
		for name, b := range a.Constraints {
			resp.Constraints[name] = b
		}
	}
	return resp
}

func FromCombined(risks map[string]float64, c mdrisk.Combined) *CombinedResponse {
	return &CombinedResponse{
		Risks:      risks,
		Risk:       c.Risk,
		Overridden: c.Overridden,
		Tier:       c.Tier.Name,
		MinPremium: c.Tier.MinPremium,
		MaxPremium: c.Tier.MaxPremium,
	}
}
