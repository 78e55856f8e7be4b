package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cardia/riskapi/internal/app/bootstrap"
	"cardia/riskapi/internal/app/domains/entity/etassessment"
)

var (
	predictAssessment string
	predictFields     []string
)

var predictCmd = &cobra.Command{
	Use:     "predict",
	Short:   "Score one submission from the command line",
	Example: "  apiserver predict --assessment heart --field age=42 --field sex=male ...",
	RunE:    runPredict,
}

func init() {
	predictCmd.Flags().StringVarP(&predictAssessment, "assessment", "a", "", "Assessment name (default: configured default)")
	predictCmd.Flags().StringArrayVarP(&predictFields, "field", "f", nil, "Feature value as name=value, repeatable")
}

func parseFields(pairs []string) (etassessment.RawSubmission, error) {
	raw := make(etassessment.RawSubmission, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --field %q, expected name=value", pair)
		}
		raw[strings.TrimSpace(name)] = value
	}
	return raw, nil
}

func runPredict(cmd *cobra.Command, _ []string) error {
	raw, err := parseFields(predictFields)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	name := predictAssessment
	if name == "" {
		name = cfg.DefaultAssessment
	}

	ctx := context.Background()
	svc, err := bootstrap.NewPredictService(ctx, cfg, log)
	if err != nil {
		return err
	}

	result, err := svc.Predict(ctx, name, raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%.2f%%)\n", name, result.Label, result.Percent())
	return nil
}
