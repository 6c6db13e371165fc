package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Detection.Detector != "dfs" {
		t.Errorf("detector = %s, want dfs", cfg.Detection.Detector)
	}
	if cfg.Detection.MaxDepth != 25 {
		t.Errorf("maxDepth = %d, want 25", cfg.Detection.MaxDepth)
	}
	if cfg.Detection.MaxCycleLength != 20 {
		t.Errorf("maxCycleLength = %d, want 20", cfg.Detection.MaxCycleLength)
	}
	if cfg.Detection.MaxCycles != 50 {
		t.Errorf("maxCycles = %d, want 50", cfg.Detection.MaxCycles)
	}
	if cfg.Detection.MaxSCCCycles != 100 {
		t.Errorf("maxSccCycles = %d, want 100", cfg.Detection.MaxSCCCycles)
	}
	if !cfg.Store.Enabled {
		t.Error("store should be enabled by default")
	}
	if cfg.Store.Dir != ".cda" {
		t.Errorf("store dir = %s, want .cda", cfg.Store.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Detection.Detector != "dfs" {
		t.Errorf("detector = %s, want default dfs", cfg.Detection.Detector)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cda.yaml")
	doc := `
detection:
  detector: tarjan
  maxCycles: 10
  workers: 4
store:
  enabled: false
logging:
  format: json
  level: debug
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Detection.Detector != "tarjan" {
		t.Errorf("detector = %s, want tarjan", cfg.Detection.Detector)
	}
	if cfg.Detection.MaxCycles != 10 {
		t.Errorf("maxCycles = %d, want 10", cfg.Detection.MaxCycles)
	}
	if cfg.Detection.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Detection.Workers)
	}
	// Values the file does not set keep their defaults.
	if cfg.Detection.MaxDepth != 25 {
		t.Errorf("maxDepth = %d, want default 25", cfg.Detection.MaxDepth)
	}
	if cfg.Store.Enabled {
		t.Error("store should be disabled by the file")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %s/%s, want json/debug", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadRejectsBadDetector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cda.yaml")
	if err := os.WriteFile(path, []byte("detection:\n  detector: bfs\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for unknown detector")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"tarjan", func(c *Config) { c.Detection.Detector = "tarjan" }, false},
		{"bad detector", func(c *Config) { c.Detection.Detector = "bfs" }, true},
		{"negative workers", func(c *Config) { c.Detection.Workers = -1 }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"empty strings ok", func(c *Config) {
			c.Detection.Detector = ""
			c.Logging.Level = ""
			c.Logging.Format = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Detection.Workers = 8

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(filepath.Join(dir, "cda.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Detection.Workers != 8 {
		t.Errorf("workers = %d, want 8", loaded.Detection.Workers)
	}
}
