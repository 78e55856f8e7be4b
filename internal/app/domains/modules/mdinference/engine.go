package mdinference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/pkg/errorx"
)

// DefaultTimeout bounds a single forward pass.
const DefaultTimeout = 2 * time.Second

// Engine invokes a classifier for one row at a time.
type Engine struct {
	timeout time.Duration
}

// NewEngine returns an engine; a non-positive timeout falls back to DefaultTimeout.
func NewEngine(timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{timeout: timeout}
}

type outcome struct {
	p   float64
	err error
}

// Infer returns P(positive) for a scaled single-row batch.
// Every failure, including timeouts and classifier panics, is an *errorx.InferenceError.
func (e *Engine) Infer(ctx context.Context, clf etassessment.Classifier, row etassessment.FeatureVector) (float64, error) {
	if clf == nil {
		return 0, &errorx.InferenceError{Err: errors.New("classifier not loaded")}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("classifier panic: %v", r)}
			}
		}()
		p, err := clf.Predict(ctx, row)
		done <- outcome{p: p, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, &errorx.InferenceError{Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			return 0, &errorx.InferenceError{Err: res.err}
		}
		if math.IsNaN(res.p) || res.p < 0 || res.p > 1 {
			return 0, &errorx.InferenceError{Err: fmt.Errorf("output %v is not a probability", res.p)}
		}
		return res.p, nil
	}
}
