package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Nutrition.CalorieChangePerDay != 1500 {
		t.Errorf("Nutrition.CalorieChangePerDay = %v, want 1500", cfg.Nutrition.CalorieChangePerDay)
	}
	if cfg.Engine.MaxConcurrent <= 0 {
		t.Errorf("Engine.MaxConcurrent = %d, want positive", cfg.Engine.MaxConcurrent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Engine.SolveTimeout != 10*time.Second {
		t.Errorf("Engine.SolveTimeout = %v, want 10s", cfg.Engine.SolveTimeout)
	}
	if len(cfg.Dataset.Paths) != 1 || cfg.Dataset.Paths[0] != "data/dishes.csv" {
		t.Errorf("Dataset.Paths = %v", cfg.Dataset.Paths)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATASET_PATHS", "a.csv, b.csv.gz")
	t.Setenv("SOLVE_TIMEOUT", "250ms")
	t.Setenv("MAX_CONCURRENT_SOLVES", "3")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("API_KEYS", "k1,k2")
	t.Setenv("CALORIE_CHANGE_PER_DAY", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if strings.Join(cfg.Dataset.Paths, "|") != "a.csv|b.csv.gz" {
		t.Errorf("Dataset.Paths = %v", cfg.Dataset.Paths)
	}
	if cfg.Engine.SolveTimeout != 250*time.Millisecond {
		t.Errorf("Engine.SolveTimeout = %v, want 250ms", cfg.Engine.SolveTimeout)
	}
	if cfg.Engine.MaxConcurrent != 3 {
		t.Errorf("Engine.MaxConcurrent = %d, want 3", cfg.Engine.MaxConcurrent)
	}
	if !cfg.Auth.Enabled || len(cfg.Auth.APIKeys) != 2 {
		t.Errorf("Auth = %+v", cfg.Auth)
	}
	if cfg.Nutrition.CalorieChangePerDay != 500 {
		t.Errorf("Nutrition.CalorieChangePerDay = %v, want 500", cfg.Nutrition.CalorieChangePerDay)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "7070"
engine:
  max_nodes: 5000
logging:
  format: text
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.Engine.MaxNodes != 5000 {
		t.Errorf("Engine.MaxNodes = %d, want 5000", cfg.Engine.MaxNodes)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "auth without keys", mutate: func(c *Config) { c.Auth.Enabled = true; c.Auth.APIKeys = nil }, wantErr: true},
		{name: "no dataset", mutate: func(c *Config) { c.Dataset.Paths = nil }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Engine.MaxConcurrent = 0 }, wantErr: true},
		{name: "negative calorie change", mutate: func(c *Config) { c.Nutrition.CalorieChangePerDay = -1 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "rate limit disabled ignores window", mutate: func(c *Config) { c.RateLimit.Enabled = false; c.RateLimit.Window = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	if got := envTransformFunc("SOLVE_TIMEOUT"); got != "engine.solve_timeout" {
		t.Errorf("SOLVE_TIMEOUT -> %q", got)
	}
	if got := envTransformFunc("HOME"); got != "" {
		t.Errorf("unmapped key should be skipped, got %q", got)
	}
}
