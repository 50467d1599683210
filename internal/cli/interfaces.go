package cli

import (
	"github.com/Backland-Labs/n8n-preflight/internal/config"
	"github.com/Backland-Labs/n8n-preflight/internal/preflight"
)

// ConfigLoader interface for dependency injection in tests
type ConfigLoader interface {
	Load() (*config.Config, error)
}

// RealConfigLoader implements ConfigLoader using the real config package
type RealConfigLoader struct{}

func (r *RealConfigLoader) Load() (*config.Config, error) {
	return config.New()
}

// Dependencies struct for injection
type Dependencies struct {
	ConfigLoader ConfigLoader
	RuntimeProbe preflight.RuntimeProbe
	// UseColor allows color on whichever of stdout/stderr is a terminal
	UseColor bool
}

// NewRealDependencies creates production dependencies
func NewRealDependencies() *Dependencies {
	return &Dependencies{
		ConfigLoader: &RealConfigLoader{},
		RuntimeProbe: preflight.ExecProbe{},
		UseColor:     true,
	}
}
