// Package config provides configuration management for the preflight CLI.
// It loads settings from environment variables and an optional project
// manifest, with sensible defaults for the n8n/Claude toolchain layout.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Verbosity represents the output verbosity level
type Verbosity string

const (
	// VerbosityNormal shows only the check status lines
	VerbosityNormal Verbosity = "normal"
	// VerbosityVerbose adds informational diagnostics
	VerbosityVerbose Verbosity = "verbose"
	// VerbosityDebug provides full debug logging
	VerbosityDebug Verbosity = "debug"
)

// Default locations, relative to the project root.
const (
	DefaultEnvFile      = ".env"
	DefaultClaudeConfig = "config/claude-code-config.json"
	DefaultSystemPrompt = "config/system-prompt.md"
	DefaultRuntime      = "docker"
)

// DefaultRequiredVars lists the variables the n8n integration cannot start without.
var DefaultRequiredVars = []string{"N8N_API_URL", "N8N_API_KEY"}

var varNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds all configuration for the preflight CLI
type Config struct {
	// Root is the project root every relative path is resolved against
	Root string `env:"PREFLIGHT_ROOT"`

	// EnvFile is the environment file holding KEY=VALUE assignments
	EnvFile string `env:"PREFLIGHT_ENV_FILE"`

	// ClaudeConfig is the optional Claude JSON configuration
	ClaudeConfig string `env:"PREFLIGHT_CLAUDE_CONFIG"`

	// SystemPrompt is the prompt file handed to Claude
	SystemPrompt string `env:"PREFLIGHT_SYSTEM_PROMPT"`

	// Runtime is the container runtime executable
	Runtime string `env:"PREFLIGHT_RUNTIME"`

	// RuntimeTimeout bounds the runtime version query
	RuntimeTimeout time.Duration `env:"PREFLIGHT_RUNTIME_TIMEOUT" envDefault:"10s"`

	// RequiredVars must each be assigned a non-empty value in EnvFile
	RequiredVars []string `env:"PREFLIGHT_REQUIRED_VARS" envSeparator:","`

	// Verbosity controls diagnostic output
	Verbosity Verbosity `env:"PREFLIGHT_VERBOSITY"`
}

// New creates a new Config from environment variables and the project manifest.
// Explicitly set environment variables take precedence over the manifest.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.resolveRoot(); err != nil {
		return nil, err
	}

	manifest, err := LoadManifest(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.merge(manifest)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolveRoot() error {
	if c.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		c.Root = cwd
	} else if !filepath.IsAbs(c.Root) {
		abs, err := filepath.Abs(c.Root)
		if err != nil {
			return fmt.Errorf("failed to resolve PREFLIGHT_ROOT: %w", err)
		}
		c.Root = abs
	}

	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("project root %s is not accessible: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project root %s is not a directory", c.Root)
	}
	return nil
}

// merge fills unset fields from the manifest, then from the defaults.
func (c *Config) merge(m *Manifest) {
	if m == nil {
		m = &Manifest{}
	}

	c.EnvFile = firstNonEmpty(c.EnvFile, m.EnvFile, DefaultEnvFile)
	c.ClaudeConfig = firstNonEmpty(c.ClaudeConfig, m.ClaudeConfig, DefaultClaudeConfig)
	c.SystemPrompt = firstNonEmpty(c.SystemPrompt, m.SystemPrompt, DefaultSystemPrompt)
	c.Runtime = firstNonEmpty(c.Runtime, m.Runtime, DefaultRuntime)

	if c.Verbosity == "" {
		c.Verbosity = VerbosityNormal
	}

	base := c.RequiredVars
	if len(cleanNames(base)) == 0 {
		base = DefaultRequiredVars
	}
	c.RequiredVars = cleanNames(append(append([]string{}, base...), m.RequiredVars...))
}

// Validate checks the resolved configuration for values the checks cannot work with.
func (c *Config) Validate() error {
	switch c.Verbosity {
	case VerbosityNormal, VerbosityVerbose, VerbosityDebug:
	default:
		return fmt.Errorf("PREFLIGHT_VERBOSITY must be one of: normal, verbose, debug; got: %s", c.Verbosity)
	}

	if strings.TrimSpace(c.Runtime) == "" {
		return fmt.Errorf("container runtime cannot be empty")
	}

	if c.RuntimeTimeout <= 0 {
		return fmt.Errorf("PREFLIGHT_RUNTIME_TIMEOUT must be positive, got: %s", c.RuntimeTimeout)
	}

	if len(c.RequiredVars) == 0 {
		return fmt.Errorf("at least one required variable must be configured")
	}
	for _, name := range c.RequiredVars {
		if !varNamePattern.MatchString(name) {
			return fmt.Errorf("invalid required variable name: %q", name)
		}
	}

	return nil
}

// Path resolves a configured location against the project root.
func (c *Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, rel)
}

// IsVerbose returns true if verbosity is verbose or debug
func (c *Config) IsVerbose() bool {
	return c.Verbosity == VerbosityVerbose || c.Verbosity == VerbosityDebug
}

// IsDebug returns true if verbosity is debug
func (c *Config) IsDebug() bool {
	return c.Verbosity == VerbosityDebug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// cleanNames trims entries, drops blanks and removes duplicates, keeping first-seen order.
func cleanNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
