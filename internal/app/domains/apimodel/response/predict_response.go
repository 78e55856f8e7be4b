package response

import "cardia/riskapi/internal/app/domains/entity/etassessment"

// PredictResponse is the data of a successful JSON prediction.
type PredictResponse struct {
	Assessment  string  `json:"assessment" example:"heart"`
	Label       string  `json:"label" example:"Positive"`
	Class       string  `json:"class" example:"danger"`
	Probability float64 `json:"probability" example:"0.73"`
	Percent     float64 `json:"percent" example:"73"`
}

// AssessmentResponse describes a form the API accepts.
type AssessmentResponse struct {
	Name        string                        `json:"name"`
	Title       string                        `json:"title"`
	Features    []string                      `json:"features"`
	Categorical map[string]string             `json:"categorical,omitempty"`
	Constraints map[string]etassessment.Bound `json:"constraints,omitempty"`
	Weight      float64                       `json:"weight"`
}

// CombinedResponse is the aggregate over every assessment in the session.
type CombinedResponse struct {
	Risks      map[string]float64 `json:"risks"`
	Risk       float64            `json:"risk"`
	Overridden bool               `json:"overridden"`
	Tier       string             `json:"tier"`
	MinPremium int                `json:"min_premium"`
	MaxPremium int                `json:"max_premium"`
}
