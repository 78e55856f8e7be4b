package svpredict

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/modules/mdinference"
	"cardia/riskapi/internal/app/infra/persistence/redis"
	"cardia/riskapi/internal/app/pkg/errorx"
	"cardia/riskapi/internal/app/pkg/logger"
	"cardia/riskapi/internal/app/pkg/stats"
)

var heartFeatures = etassessment.FeatureSpec{
	"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
	"thalach", "exang", "oldpeak", "slope", "ca", "thal",
}

type stubClassifier struct {
	p    float64
	err  error
	rows [][]float64
}

func (c *stubClassifier) Predict(_ context.Context, row []float64) (float64, error) {
	c.rows = append(c.rows, append([]float64(nil), row...))
	return c.p, c.err
}

func (c *stubClassifier) InputWidth() int { return len(heartFeatures) }

type recordingPublisher struct {
	mu     sync.Mutex
	events []*redis.PredictionEvent
	err    error
}

func (p *recordingPublisher) PublishPrediction(_ context.Context, e *redis.PredictionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func newAssessment(t *testing.T, name string, clf etassessment.Classifier) *etassessment.Assessment {
	t.Helper()
	n := len(heartFeatures)
	scaler := etassessment.ScalerParams{Mean: make([]float64, n), Scale: make([]float64, n)}
	for i := range scaler.Scale {
		scaler.Scale[i] = 1
	}
	a, err := etassessment.NewAssessment(name, heartFeatures, scaler, clf)
	require.NoError(t, err)
	a.Constraints = etassessment.DefaultHeartConstraints()
	a.Categorical = map[string]etassessment.CategoricalField{"sex": etassessment.DefaultSexField()}
	return a
}

func validSubmission() etassessment.RawSubmission {
	return etassessment.RawSubmission{
		"age": "45", "sex": "male", "cp": "2", "trestbps": "130", "chol": "250",
		"fbs": "0", "restecg": "1", "thalach": "150", "exang": "0", "oldpeak": "1.2",
		"slope": "1", "ca": "0", "thal": "2",
	}
}

func newService(t *testing.T, assessments ...*etassessment.Assessment) *PredictService {
	t.Helper()
	svc, err := NewPredictService(assessments, assessments[0].Name, mdinference.NewEngine(0), stats.NewCounters(), logger.NewNop())
	require.NoError(t, err)
	return svc
}

func TestPredictPositive(t *testing.T) {
	clf := &stubClassifier{p: 0.73}
	svc := newService(t, newAssessment(t, "heart", clf))
	pub := &recordingPublisher{}
	svc.SetPublisher(pub)

	ctx := logger.WithRequestID(context.Background(), "req-42")
	res, err := svc.Predict(ctx, "heart", validSubmission())
	require.NoError(t, err)
	assert.Equal(t, etassessment.LabelPositive, res.Label)
	assert.InDelta(t, 0.73, res.Probability, 1e-12)

	require.Len(t, clf.rows, 1)
	assert.Equal(t, []float64{45, 1, 2, 130, 250, 0, 1, 150, 0, 1.2, 1, 0, 2}, clf.rows[0])

	require.Len(t, pub.events, 1)
	assert.Equal(t, "req-42", pub.events[0].RequestID)
	assert.Equal(t, "heart", pub.events[0].Assessment)
	assert.Equal(t, "Positive", pub.events[0].Label)

	snap := svc.Counters().Snapshot()
	assert.Equal(t, int64(1), snap.Predictions)
	assert.Equal(t, int64(1), snap.Positive)
}

func TestPredictValidationShortCircuits(t *testing.T) {
	clf := &stubClassifier{p: 0.2}
	svc := newService(t, newAssessment(t, "heart", clf))

	raw := validSubmission()
	raw["trestbps"] = ""
	raw["chol"] = "abc"

	_, err := svc.Predict(context.Background(), "heart", raw)
	var fieldErr *errorx.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "Field 'trestbps' is required.", fieldErr.Error())
	assert.Empty(t, clf.rows)
	assert.Equal(t, int64(1), svc.Counters().Snapshot().ValidationErrors)
}

func TestPredictInferenceFailure(t *testing.T) {
	clf := &stubClassifier{err: errors.New("shape mismatch")}
	svc := newService(t, newAssessment(t, "heart", clf))
	pub := &recordingPublisher{}
	svc.SetPublisher(pub)

	_, err := svc.Predict(context.Background(), "heart", validSubmission())
	var infErr *errorx.InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.Equal(t, "Prediction failed. Please check your input and try again.", errorx.UserMessage(err))
	assert.Empty(t, pub.events)
	assert.Equal(t, int64(1), svc.Counters().Snapshot().InferenceErrors)
}

func TestPredictPublishFailureIsIgnored(t *testing.T) {
	svc := newService(t, newAssessment(t, "heart", &stubClassifier{p: 0.1}))
	svc.SetPublisher(&recordingPublisher{err: errors.New("redis down")})

	res, err := svc.Predict(context.Background(), "heart", validSubmission())
	require.NoError(t, err)
	assert.Equal(t, etassessment.LabelNegative, res.Label)
}

func TestPredictUnknownAssessment(t *testing.T) {
	svc := newService(t, newAssessment(t, "heart", &stubClassifier{p: 0.1}))

	_, err := svc.Predict(context.Background(), "lung", validSubmission())
	assert.ErrorIs(t, err, ErrUnknownAssessment)
}

func TestNewPredictServiceRejectsBadDefault(t *testing.T) {
	a := newAssessment(t, "heart", &stubClassifier{})
	_, err := NewPredictService([]*etassessment.Assessment{a}, "kidney", nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownAssessment)

	_, err = NewPredictService([]*etassessment.Assessment{a, a}, "heart", nil, nil, nil)
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	heart := newAssessment(t, "heart", &stubClassifier{})
	heart.Weight = 0.5
	heart.CriticalOverride = true
	diabetes := newAssessment(t, "diabetes", &stubClassifier{})
	diabetes.Weight = 0.5
	svc := newService(t, heart, diabetes)

	assert.Equal(t, []*etassessment.Assessment{heart, diabetes}, svc.Assessments())

	_, err := svc.Combine(map[string]float64{"heart": 0.2})
	assert.ErrorIs(t, err, ErrIncompleteResults)

	got, err := svc.Combine(map[string]float64{"heart": 0.2, "diabetes": 0.3})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got.Risk, 1e-12)
	assert.Equal(t, "Low-Medium", got.Tier.Name)

	got, err = svc.Combine(map[string]float64{"heart": 0.95, "diabetes": 0.1})
	require.NoError(t, err)
	assert.True(t, got.Overridden)
	assert.Equal(t, 0.9, got.Risk)
}
