package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config holds all configuration for the application
// Values are layered: struct defaults, then an optional YAML file, then environment variables
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Auth      AuthConfig      `koanf:"auth"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Engine    EngineConfig    `koanf:"engine"`
	Nutrition NutritionConfig `koanf:"nutrition"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
}

type AuthConfig struct {
	Enabled bool     `koanf:"enabled"`
	APIKeys []string `koanf:"api_keys"` // Valid API keys for authentication
}

type DatasetConfig struct {
	Paths []string `koanf:"paths"` // Local paths or http(s) URLs, optionally gzipped
}

type EngineConfig struct {
	SolveTimeout  time.Duration `koanf:"solve_timeout"`  // 0 disables the per-solve deadline
	MaxConcurrent int64         `koanf:"max_concurrent"` // Round loops running at once
	MaxNodes      int64         `koanf:"max_nodes"`      // 0 means unlimited
}

type NutritionConfig struct {
	CalorieChangePerDay float64 `koanf:"calorie_change_per_day"`
}

type RateLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
		},
		Auth: AuthConfig{
			Enabled: false,
			APIKeys: []string{"apitest"},
		},
		Dataset: DatasetConfig{
			Paths: []string{"data/dishes.csv"},
		},
		Engine: EngineConfig{
			SolveTimeout:  10 * time.Second,
			MaxConcurrent: int64(runtime.GOMAXPROCS(0)),
			MaxNodes:      0,
		},
		Nutrition: NutritionConfig{
			CalorieChangePerDay: 1500,
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 60,
			Window:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured when auth is enabled")
	}

	if len(c.Dataset.Paths) == 0 {
		return fmt.Errorf("at least one dataset path must be configured")
	}

	if c.Engine.MaxConcurrent <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_SOLVES must be positive, got %d", c.Engine.MaxConcurrent)
	}
	if c.Engine.SolveTimeout < 0 {
		return fmt.Errorf("SOLVE_TIMEOUT must not be negative")
	}
	if c.Engine.MaxNodes < 0 {
		return fmt.Errorf("SOLVER_MAX_NODES must not be negative")
	}

	if c.Nutrition.CalorieChangePerDay <= 0 {
		return fmt.Errorf("CALORIE_CHANGE_PER_DAY must be positive")
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit requires positive RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
