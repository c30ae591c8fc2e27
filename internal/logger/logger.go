// Package logger holds the process wide structured logger.
//
// Sugar is a no-op logger until New is called, so packages can log freely from
// tests and library code without any setup.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WrappedLogger adds service naming to a zap sugared logger.
type WrappedLogger struct {
	*zap.SugaredLogger
}

var Sugar = &WrappedLogger{zap.NewNop().Sugar()}

// New replaces Sugar with a logger at the given level. "NOOP" keeps logging disabled
// and "TEST" logs everything in development format.
func New(level string) error {
	switch strings.ToUpper(level) {
	case "NOOP":
		Sugar = &WrappedLogger{zap.NewNop().Sugar()}
		return nil
	case "TEST":
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building test logger: %w", err)
		}
		Sugar = &WrappedLogger{l.Sugar()}
		return nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	Sugar = &WrappedLogger{l.Sugar()}
	return nil
}

// WithServiceName returns a child logger tagged with name.
func (w *WrappedLogger) WithServiceName(name string) *WrappedLogger {
	return &WrappedLogger{w.SugaredLogger.With("service", name)}
}

// OnExit flushes buffered entries. Call it before the process exits.
func OnExit() {
	// stderr sync fails on some terminals; nothing useful can be done about it
	_ = Sugar.Sync()
}
