package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cardia/riskapi/internal/app/bootstrap"
)

var checkAssetsCmd = &cobra.Command{
	Use:   "check-assets",
	Short: "Load every configured assessment and report its shape",
	RunE:  runCheckAssets,
}

func runCheckAssets(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	assessments, err := bootstrap.LoadAssessments(context.Background(), cfg.Assessments, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, a := range assessments {
		fmt.Fprintf(out, "%-12s features=%-3d constraints=%-2d weight=%.2f\n",
			a.Name, len(a.Features), len(a.Constraints), a.Weight)
	}
	fmt.Fprintf(out, "OK: %d assessment(s) loaded\n", len(assessments))
	return nil
}
