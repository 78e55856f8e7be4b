package mdrisk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func components(heart, kidney, diabetes float64) []Component {
	return []Component{
		{Name: "heart", Risk: heart, Weight: 0.5, CriticalOverride: true},
		{Name: "kidney", Risk: kidney, Weight: 0.3, CriticalOverride: true},
		{Name: "diabetes", Risk: diabetes, Weight: 0.2},
	}
}

func TestCombineWeightedMean(t *testing.T) {
	got, err := Combine(components(0.4, 0.2, 0.1))
	require.NoError(t, err)
	assert.InDelta(t, 0.28, got.Risk, 1e-9)
	assert.False(t, got.Overridden)
	assert.Equal(t, "Low-Medium", got.Tier.Name)
}

func TestCombineCriticalOverride(t *testing.T) {
	got, err := Combine(components(0.95, 0.1, 0.1))
	require.NoError(t, err)
	assert.Equal(t, CriticalRisk, got.Risk)
	assert.True(t, got.Overridden)
	assert.Equal(t, "Critical", got.Tier.Name)

	// diabetes never triggers the override
	got, err = Combine(components(0.1, 0.1, 0.99))
	require.NoError(t, err)
	assert.False(t, got.Overridden)
	assert.Less(t, got.Risk, CriticalRisk)
}

func TestCombineErrors(t *testing.T) {
	_, err := Combine(nil)
	assert.Error(t, err)

	_, err = Combine([]Component{{Name: "heart", Risk: 0.5, Weight: 0}})
	assert.Error(t, err)

	_, err = Combine([]Component{{Name: "heart", Risk: 0.5, Weight: -1}})
	assert.Error(t, err)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		risk float64
		want string
		min  int
		max  int
	}{
		{0, "Very Low", 2000, 3000},
		{0.10, "Very Low", 2000, 3000},
		{0.15, "Low", 3000, 5000},
		{0.50, "Medium-High", 12000, 17000},
		{0.55, "High", 17000, 22000},
		{0.90, "Critical", 35000, 43000},
		{0.91, "Extremely Critical", 43000, 53000},
		{1, "Extremely Critical", 43000, 53000},
	}
	for _, tt := range tests {
		tier := TierFor(tt.risk)
		assert.Equal(t, tt.want, tier.Name, "risk %v", tt.risk)
		assert.Equal(t, tt.min, tier.MinPremium)
		assert.Equal(t, tt.max, tier.MaxPremium)
	}
}
