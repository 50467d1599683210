package logger

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap-backed Logger writing to w
func New(cfg *Config, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, fmt.Errorf("failed to create zap logger: nil writer")
	}

	var encCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	if cfg.IsDevelopment() {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(cfg.Level.zapLevel()))

	// Skip the Logger method frame so callers, not this package, are reported.
	opts := []zap.Option{zap.AddCallerSkip(1)}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller())
	}

	return wrap(zap.New(core, opts...)), nil
}

func (lvl Level) zapLevel() zapcore.Level {
	switch lvl {
	case DebugLevel:
		return zap.DebugLevel
	case WarnLevel:
		return zap.WarnLevel
	case ErrorLevel:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
