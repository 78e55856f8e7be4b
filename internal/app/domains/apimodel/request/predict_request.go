package request

// PredictRequest is the JSON body of POST /api/v1/predict/:name.
// Feature values may be strings or numbers.
type PredictRequest struct {
	Features map[string]interface{} `json:"features" binding:"required" example:"age:45"`
}
