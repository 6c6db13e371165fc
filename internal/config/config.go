// Package config loads analyzer configuration. Precedence: CLI flags >
// CDA_* environment variables > config file > defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete analyzer configuration
type Config struct {
	Version   int             `json:"version" mapstructure:"version"`
	Detection DetectionConfig `json:"detection" mapstructure:"detection"`
	Store     StoreConfig     `json:"store" mapstructure:"store"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// DetectionConfig bounds the cycle search
type DetectionConfig struct {
	Detector       string `json:"detector" mapstructure:"detector"`             // "dfs" or "tarjan"
	MaxDepth       int    `json:"maxDepth" mapstructure:"maxDepth"`             // DFS traversal depth
	MaxCycleLength int    `json:"maxCycleLength" mapstructure:"maxCycleLength"` // longest accepted cycle
	MaxCycles      int    `json:"maxCycles" mapstructure:"maxCycles"`           // DFS cycle cap
	MaxSCCCycles   int    `json:"maxSccCycles" mapstructure:"maxSccCycles"`     // SCC cycle cap
	Workers        int    `json:"workers" mapstructure:"workers"`               // parallel DFS roots
	Levels         bool   `json:"levels" mapstructure:"levels"`                 // also run package-level pass
}

// StoreConfig locates the run-history database
type StoreConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir" mapstructure:"dir"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Detection: DetectionConfig{
			Detector:       "dfs",
			MaxDepth:       25,
			MaxCycleLength: 20,
			MaxCycles:      50,
			MaxSCCCycles:   100,
			Workers:        1,
			Levels:         false,
		},
		Store: StoreConfig{
			Enabled: true,
			Dir:     ".cda",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads configuration from the given file, or from cda.yaml /
// cda.json in the working directory when path is empty. A missing file
// yields defaults, not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("detection.detector", def.Detection.Detector)
	v.SetDefault("detection.maxDepth", def.Detection.MaxDepth)
	v.SetDefault("detection.maxCycleLength", def.Detection.MaxCycleLength)
	v.SetDefault("detection.maxCycles", def.Detection.MaxCycles)
	v.SetDefault("detection.maxSccCycles", def.Detection.MaxSCCCycles)
	v.SetDefault("detection.workers", def.Detection.Workers)
	v.SetDefault("detection.levels", def.Detection.Levels)
	v.SetDefault("store.enabled", def.Store.Enabled)
	v.SetDefault("store.dir", def.Store.Dir)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetEnvPrefix("CDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cda")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if path == "" && os.IsNotExist(err) {
				// No config in the working directory is fine
			} else if path != "" {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			} else {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration as indented JSON
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "cda.json"), data, 0644)
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	switch c.Detection.Detector {
	case "dfs", "tarjan", "":
	default:
		return fmt.Errorf("invalid detector %q: must be dfs or tarjan", c.Detection.Detector)
	}
	if c.Detection.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "human", "":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	return nil
}
