package bootstrap

import (
	"context"
	"fmt"

	"cardia/riskapi/internal/app/config"
	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/modules/mdassets"
	"cardia/riskapi/internal/app/pkg/logger"
)

// LoadAssessments reads every configured asset directory. The first failure
// aborts startup; a partially loaded service is never returned.
func LoadAssessments(ctx context.Context, cfgs []config.AssessmentConfig, log logger.Logger) ([]*etassessment.Assessment, error) {
	out := make([]*etassessment.Assessment, 0, len(cfgs))
	for _, ac := range cfgs {
		a, err := LoadAssessment(ctx, ac, log)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// LoadAssessment builds one assessment from its assets and form rules.
func LoadAssessment(ctx context.Context, ac config.AssessmentConfig, log logger.Logger) (*etassessment.Assessment, error) {
	ctx = logger.WithAssessment(ctx, ac.Name)

	bundle, err := mdassets.Load(ac.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("load assessment %s: %w", ac.Name, err)
	}

	a, err := etassessment.NewAssessment(ac.Name, bundle.Features, bundle.Scaler, bundle.Classifier)
	if err != nil {
		return nil, fmt.Errorf("build assessment %s: %w", ac.Name, err)
	}
	if ac.Title != "" {
		a.Title = ac.Title
	}
	if ac.Weight > 0 {
		a.Weight = ac.Weight
	}
	a.CriticalOverride = ac.CriticalOverride

	known := make(map[string]struct{}, len(a.Features))
	for _, f := range a.Features {
		known[f] = struct{}{}
	}
	for _, c := range ac.Categorical {
		if _, ok := known[c.Field]; !ok {
			log.Warnf(ctx, "categorical field %s is not in the feature list, ignored", c.Field)
			continue
		}
		a.Categorical[c.Field] = etassessment.CategoricalField{Name: c.Field, Positive: c.Positive}
	}
	for _, b := range ac.Constraints {
		if _, ok := known[b.Field]; !ok {
			log.Warnf(ctx, "constraint field %s is not in the feature list, ignored", b.Field)
			continue
		}
		a.Constraints[b.Field] = etassessment.Bound{Min: b.Min, Max: b.Max}
	}

	log.Infof(ctx, "assessment loaded: features=%d, constraints=%d, dir=%s", len(a.Features), len(a.Constraints), ac.AssetsDir)
	return a, nil
}
