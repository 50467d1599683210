package logger

import (
	"github.com/Backland-Labs/n8n-preflight/internal/config"
	"github.com/google/uuid"
)

// InitializeFromConfig sets up the global logger based on the configuration.
// Every entry of the run carries the returned run id.
func InitializeFromConfig(cfg *config.Config) string {
	runID := uuid.NewString()
	level := levelForConfig(cfg)

	logCfg, err := ConfigFromEnv(level)
	if err != nil {
		logCfg = &Config{Level: level, Format: "console"}
	}

	l := mustNew(logCfg).WithField("run_id", runID)
	if err != nil {
		l.Warnf("ignoring logger environment: %v", err)
	}
	SetLogger(l)
	return runID
}

// levelForConfig maps verbosity to a level; normal runs only let errors through
func levelForConfig(cfg *config.Config) Level {
	switch {
	case cfg.IsDebug():
		return DebugLevel
	case cfg.IsVerbose():
		return InfoLevel
	default:
		return ErrorLevel
	}
}
