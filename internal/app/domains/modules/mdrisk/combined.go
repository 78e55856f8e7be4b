package mdrisk

import (
	"errors"
	"fmt"
	"math"
)

// CriticalRisk is the per-assessment probability above which the combined
// score is forced up to at least the same value.
const CriticalRisk = 0.9

// Component is one assessment's contribution to the combined score.
type Component struct {
	Name             string
	Risk             float64
	Weight           float64
	CriticalOverride bool
}

// Combined is the weighted aggregate over all assessments.
type Combined struct {
	Risk       float64
	Overridden bool
	Tier       PremiumTier
}

// Combine returns Σ risk·w / Σ w. If any component with CriticalOverride exceeds
// CriticalRisk, the result is raised to CriticalRisk.
func Combine(components []Component) (Combined, error) {
	if len(components) == 0 {
		return Combined{}, errors.New("no risk components")
	}

	var weighted, total float64
	critical := false
	for _, c := range components {
		if c.Weight < 0 {
			return Combined{}, fmt.Errorf("component %s: negative weight", c.Name)
		}
		weighted += c.Risk * c.Weight
		total += c.Weight
		if c.CriticalOverride && c.Risk > CriticalRisk {
			critical = true
		}
	}
	if total == 0 {
		return Combined{}, errors.New("risk weights sum to zero")
	}

	out := Combined{Risk: weighted / total}
	if critical && out.Risk < CriticalRisk {
		out.Risk = CriticalRisk
		out.Overridden = true
	}
	out.Tier = TierFor(out.Risk)
	return out, nil
}

// PremiumTier is an annual premium band.
type PremiumTier struct {
	Name       string
	MinPremium int
	MaxPremium int
}

type tierBound struct {
	upToPercent float64
	tier        PremiumTier
}

var premiumTiers = []tierBound{
	{10, PremiumTier{"Very Low", 2000, 3000}},
	{20, PremiumTier{"Low", 3000, 5000}},
	{30, PremiumTier{"Low-Medium", 5000, 8000}},
	{40, PremiumTier{"Medium", 8000, 12000}},
	{50, PremiumTier{"Medium-High", 12000, 17000}},
	{60, PremiumTier{"High", 17000, 22000}},
	{70, PremiumTier{"High-Risk", 22000, 28000}},
	{80, PremiumTier{"Very High", 28000, 35000}},
	{90, PremiumTier{"Critical", 35000, 43000}},
}

var topTier = PremiumTier{"Extremely Critical", 43000, 53000}

// TierFor maps a risk in [0,1] to its premium band (upper bounds inclusive).
// The percentage is rounded to six decimals so 0.9 lands in "Critical".
func TierFor(risk float64) PremiumTier {
	pct := math.Round(risk*100*1e6) / 1e6
	for _, b := range premiumTiers {
		if pct <= b.upToPercent {
			return b.tier
		}
	}
	return topTier
}
