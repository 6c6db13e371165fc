package main

import (
	"cda/internal/config"
	"cda/internal/logging"
	"cda/internal/version"

	"github.com/spf13/cobra"
)

var (
	configFlag    string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cda",
	Short: "CDA - Circular Dependency Analyzer",
	Long: `CDA (Circular Dependency Analyzer) inspects the dependency-injection
graph of an analyzed application, detects circular dependency cycles,
classifies their severity and risk, and proposes ranked remediation
strategies. It consumes component metadata produced by an external
extraction step and emits a structured diagnostic report.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("cda version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: cda.yaml or cda.json in the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: json, human")
}

// loadConfig resolves the effective configuration for a command,
// applying CLI log flag overrides on top of file and env values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	if logFormatFlag != "" {
		cfg.Logging.Format = logFormatFlag
	}
	return cfg, nil
}

// newLogger builds the logger a command uses, honoring config and flags
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}
