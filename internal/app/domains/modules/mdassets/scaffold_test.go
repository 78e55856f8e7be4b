package mdassets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
)

func TestWritePlaceholder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritePlaceholder(dir, []string{"age", "sex", "chol"}))

	bundle, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, etassessment.FeatureSpec{"age", "sex", "chol"}, bundle.Features)
	assert.Equal(t, []float64{1, 1, 1}, bundle.Scaler.Scale)

	p, err := bundle.Classifier.Predict(context.Background(), []float64{3, -1, 7})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-9)

	assert.ErrorIs(t, WritePlaceholder(t.TempDir(), []string{"target"}), etassessment.ErrEmptyFeatureSpec)
}
