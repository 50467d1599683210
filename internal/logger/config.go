package logger

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds logger configuration
type Config struct {
	Level  Level
	Format string // "console" or "json"
	Caller bool   // Include caller information
}

type envConfig struct {
	Level  string `env:"PREFLIGHT_LOG_LEVEL"`
	Format string `env:"PREFLIGHT_LOG_FORMAT" envDefault:"console"`
	Caller bool   `env:"PREFLIGHT_LOG_CALLER"`
}

// ConfigFromEnv creates a logger configuration from environment variables.
// PREFLIGHT_LOG_LEVEL wins over fallback.
func ConfigFromEnv(fallback Level) (*Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse logger environment: %w", err)
	}

	cfg := &Config{
		Format: strings.ToLower(raw.Format),
		Caller: raw.Caller,
	}

	if raw.Level != "" {
		cfg.Level = LevelFromString(raw.Level)
	} else {
		cfg.Level = fallback
	}

	switch cfg.Format {
	case "console", "json":
	default:
		return nil, fmt.Errorf("PREFLIGHT_LOG_FORMAT must be console or json, got: %s", raw.Format)
	}

	return cfg, nil
}

// IsDevelopment returns true if the logger is configured for development mode
func (c *Config) IsDevelopment() bool {
	return c.Format == "console"
}
