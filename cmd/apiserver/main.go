package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardia/riskapi/internal/app/config"
	"cardia/riskapi/internal/app/pkg/logger"
)

const defaultConfigPath = "config/config.yaml"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "apiserver",
	Short:         "Disease risk prediction service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkAssetsCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(scaffoldAssetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file when it exists. A missing default file
// falls back to built-in defaults; an explicit --config must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.ZapLogger, error) {
	return logger.NewZapLogger(cfg.App.LogLevel)
}
