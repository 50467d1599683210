package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level represents the logging level
type Level int

const (
	// DebugLevel logs everything
	DebugLevel Level = iota
	// InfoLevel logs info, warnings, and errors
	InfoLevel
	// WarnLevel logs warnings and errors
	WarnLevel
	// ErrorLevel logs only errors
	ErrorLevel
)

// Logger provides structured diagnostics on top of zap. Console status
// lines are not written through here; see the output package.
type Logger struct {
	zap   *zap.Logger
	sugar *zap.SugaredLogger
}

var (
	globalLogger *Logger
	globalMu     sync.Mutex
)

func init() {
	// Quiet until InitializeFromConfig runs, so status lines stay readable.
	globalLogger = mustNew(&Config{Level: ErrorLevel, Format: "console"})
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{zap: z, sugar: z.Sugar()}
}

// WithField returns a logger carrying an extra field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return wrap(l.zap.With(zap.Any(key, value)))
}

// WithFields returns a logger carrying extra fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return wrap(l.zap.With(zapFields...))
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Timed starts timing an operation; call Done or DoneWithError on the result.
func (l *Logger) Timed(operation string) *TimedLogger {
	l.Debugf("%s started", operation)
	return &TimedLogger{logger: l, start: time.Now(), op: operation}
}

// TimedLogger tracks the duration of an operation
type TimedLogger struct {
	logger *Logger
	start  time.Time
	op     string
}

// Done logs the completion of the timed operation
func (t *TimedLogger) Done() {
	t.logger.WithField("duration_ms", durationMillis(time.Since(t.start))).Debugf("%s completed", t.op)
}

// DoneWithError logs the completion of the timed operation along with its error
func (t *TimedLogger) DoneWithError(err error) {
	if err == nil {
		t.Done()
		return
	}
	t.logger.WithFields(map[string]interface{}{
		"duration_ms": durationMillis(time.Since(t.start)),
		"error":       err.Error(),
	}).Debugf("%s failed", t.op)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

func durationMillis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalLogger
}

// SetLogger sets the global logger instance
func SetLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// LevelFromString converts a string to a log level
func LevelFromString(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func mustNew(cfg *Config) *Logger {
	l, err := New(cfg, os.Stderr)
	if err != nil {
		panic(err)
	}
	return l
}
