package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardia/riskapi/internal/app/domains/modules/mdassets"
)

var (
	scaffoldDir      string
	scaffoldFeatures []string
)

var scaffoldAssetsCmd = &cobra.Command{
	Use:   "scaffold-assets",
	Short: "Write a placeholder model, scaler and feature list for smoke runs",
	RunE:  runScaffoldAssets,
}

func init() {
	scaffoldAssetsCmd.Flags().StringVarP(&scaffoldDir, "dir", "d", "", "Asset directory to create")
	scaffoldAssetsCmd.Flags().StringSliceVar(&scaffoldFeatures, "features", nil, "Comma-separated feature names, in model input order")
	_ = scaffoldAssetsCmd.MarkFlagRequired("dir")
	_ = scaffoldAssetsCmd.MarkFlagRequired("features")
}

func runScaffoldAssets(cmd *cobra.Command, _ []string) error {
	if err := mdassets.WritePlaceholder(scaffoldDir, scaffoldFeatures); err != nil {
		return fmt.Errorf("scaffold assets: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote placeholder assets for %d feature(s) to %s\n", len(scaffoldFeatures), scaffoldDir)
	return nil
}
