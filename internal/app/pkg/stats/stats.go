package stats

import (
	"time"

	"go.uber.org/atomic"
)

// Counters tracks request outcomes since process start.
type Counters struct {
	startedAt        time.Time
	predictions      atomic.Int64
	positive         atomic.Int64
	negative         atomic.Int64
	validationErrors atomic.Int64
	inferenceErrors  atomic.Int64
}

// Snapshot is a point-in-time copy for the health endpoint.
type Snapshot struct {
	UptimeSeconds    int64 `json:"uptime_seconds"`
	Predictions      int64 `json:"predictions"`
	Positive         int64 `json:"positive"`
	Negative         int64 `json:"negative"`
	ValidationErrors int64 `json:"validation_errors"`
	InferenceErrors  int64 `json:"inference_errors"`
}

// NewCounters starts the uptime clock at zero counts.
func NewCounters() *Counters {
	return &Counters{startedAt: time.Now()}
}

// RecordPrediction counts a successful prediction by label.
func (c *Counters) RecordPrediction(positive bool) {
	c.predictions.Inc()
	if positive {
		c.positive.Inc()
	} else {
		c.negative.Inc()
	}
}

// RecordValidationError counts a submission rejected by input validation.
func (c *Counters) RecordValidationError() {
	c.validationErrors.Inc()
}

// RecordInferenceError counts a failed scaling or model call.
func (c *Counters) RecordInferenceError() {
	c.inferenceErrors.Inc()
}

// Snapshot reads every counter. Counters are read one by one, not atomically as a set.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds:    int64(time.Since(c.startedAt).Seconds()),
		Predictions:      c.predictions.Load(),
		Positive:         c.positive.Load(),
		Negative:         c.negative.Load(),
		ValidationErrors: c.validationErrors.Load(),
		InferenceErrors:  c.inferenceErrors.Load(),
	}
}
