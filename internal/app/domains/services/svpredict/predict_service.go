package svpredict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/modules/mdinference"
	"cardia/riskapi/internal/app/domains/modules/mdrisk"
	"cardia/riskapi/internal/app/domains/modules/mdscaler"
	"cardia/riskapi/internal/app/domains/modules/mdvalidate"
	"cardia/riskapi/internal/app/infra/persistence/redis"
	"cardia/riskapi/internal/app/pkg/logger"
	"cardia/riskapi/internal/app/pkg/stats"
)

var (
	ErrUnknownAssessment = errors.New("unknown assessment")
	ErrIncompleteResults = errors.New("not every assessment has a result yet")
)

const publishTimeout = time.Second

// EventPublisher receives one event per successful prediction.
type EventPublisher interface {
	PublishPrediction(ctx context.Context, event *redis.PredictionEvent) error
}

// PredictService runs the validate, scale, infer and classify pipeline.
// All fields are read-only after construction.
type PredictService struct {
	assessments map[string]*etassessment.Assessment
	validators  map[string]*mdvalidate.Validator
	order       []string
	defaultName string
	engine      *mdinference.Engine
	counters    *stats.Counters
	publisher   EventPublisher
	log         logger.Logger
}

// NewPredictService indexes assessments by name. defaultName must be one of them.
func NewPredictService(assessments []*etassessment.Assessment, defaultName string, engine *mdinference.Engine, counters *stats.Counters, log logger.Logger) (*PredictService, error) {
	if len(assessments) == 0 {
		return nil, errors.New("at least one assessment is required")
	}
	if engine == nil {
		engine = mdinference.NewEngine(0)
	}
	if counters == nil {
		counters = stats.NewCounters()
	}
	if log == nil {
		log = logger.NewNop()
	}

	s := &PredictService{
		assessments: make(map[string]*etassessment.Assessment, len(assessments)),
		validators:  make(map[string]*mdvalidate.Validator, len(assessments)),
		order:       make([]string, 0, len(assessments)),
		defaultName: defaultName,
		engine:      engine,
		counters:    counters,
		log:         log,
	}
	for _, a := range assessments {
		if _, dup := s.assessments[a.Name]; dup {
			return nil, fmt.Errorf("assessment %s registered twice", a.Name)
		}
		s.assessments[a.Name] = a
		s.validators[a.Name] = mdvalidate.NewValidator(a)
		s.order = append(s.order, a.Name)
	}
	if _, ok := s.assessments[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownAssessment, defaultName)
	}
	return s, nil
}

// SetPublisher enables prediction events. A nil publisher disables them.
func (s *PredictService) SetPublisher(p EventPublisher) {
	s.publisher = p
}

// Assessment looks up an assessment by name.
func (s *PredictService) Assessment(name string) (*etassessment.Assessment, bool) {
	a, ok := s.assessments[name]
	return a, ok
}

// Default returns the assessment served at "/".
func (s *PredictService) Default() *etassessment.Assessment {
	return s.assessments[s.defaultName]
}

// Assessments returns every assessment in configuration order.
func (s *PredictService) Assessments() []*etassessment.Assessment {
	out := make([]*etassessment.Assessment, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.assessments[name])
	}
	return out
}

// Counters exposes the outcome counters for the health endpoint.
func (s *PredictService) Counters() *stats.Counters {
	return s.counters
}

// Predict scores one submission. The error, if any, is ErrUnknownAssessment,
// *errorx.FieldError, *errorx.ScalerConfigError or *errorx.InferenceError.
func (s *PredictService) Predict(ctx context.Context, name string, raw etassessment.RawSubmission) (etassessment.PredictionResult, error) {
	a, ok := s.assessments[name]
	if !ok {
		return etassessment.PredictionResult{}, fmt.Errorf("%w: %s", ErrUnknownAssessment, name)
	}
	ctx = logger.WithAssessment(ctx, name)

	res := s.validators[name].Validate(raw)
	if !res.OK() {
		s.counters.RecordValidationError()
		s.log.Infof(ctx, "validation failed: %v", res.Err)
		return etassessment.PredictionResult{}, res.Err
	}

	scaled, err := mdscaler.Transform(res.Vector, a.Scaler)
	if err != nil {
		s.counters.RecordInferenceError()
		s.log.Errorf(ctx, "scale features failed: %v", err)
		return etassessment.PredictionResult{}, err
	}

	p, err := s.engine.Infer(ctx, a.Classifier, scaled)
	if err != nil {
		s.counters.RecordInferenceError()
		s.log.Errorf(ctx, "inference failed: %v", err)
		return etassessment.PredictionResult{}, err
	}

	result := etassessment.Classify(p)
	s.counters.RecordPrediction(result.Label == etassessment.LabelPositive)
	s.log.Infof(ctx, "prediction completed: label=%s, probability=%.4f", result.Label, result.Probability)

	s.publish(ctx, name, result)
	return result, nil
}

// publish failures are logged only; they never fail the prediction.
func (s *PredictService) publish(ctx context.Context, name string, result etassessment.PredictionResult) {
	if s.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := &redis.PredictionEvent{
		RequestID:   logger.RequestID(ctx),
		Assessment:  name,
		Label:       string(result.Label),
		Probability: result.Probability,
		Timestamp:   time.Now().Unix(),
	}
	if err := s.publisher.PublishPrediction(pubCtx, event); err != nil {
		s.log.Warnf(ctx, "publish prediction event failed: %v", err)
	}
}

// Combine aggregates the stored per-assessment risks. Every configured
// assessment must be present, otherwise ErrIncompleteResults is returned.
func (s *PredictService) Combine(risks map[string]float64) (mdrisk.Combined, error) {
	components := make([]mdrisk.Component, 0, len(s.order))
	for _, name := range s.order {
		risk, ok := risks[name]
		if !ok {
			return mdrisk.Combined{}, fmt.Errorf("%w: missing %s", ErrIncompleteResults, name)
		}
		a := s.assessments[name]
		components = append(components, mdrisk.Component{
			Name:             name,
			Risk:             risk,
			Weight:           a.Weight,
			CriticalOverride: a.CriticalOverride,
		})
	}
	return mdrisk.Combine(components)
}
