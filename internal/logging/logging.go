// Package logging builds the zap loggers used by the command-line tools.
package logging

import (
	"errors"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option adjusts the zap configuration before the logger is built.
type Option func(*zap.Config)

// WithLevel sets the minimum level by name (debug, info, warn, error).
// Unknown names fall back to warn.
func WithLevel(name string) Option {
	return func(cfg *zap.Config) {
		cfg.Level = zap.NewAtomicLevelAt(ParseLevel(name))
	}
}

// WithDevelopment switches to the human-readable console encoder.
func WithDevelopment() Option {
	return func(cfg *zap.Config) {
		cfg.Development = true
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
}

// WithOutput replaces the output paths ("stderr", "stdout" or files).
func WithOutput(paths ...string) Option {
	return func(cfg *zap.Config) {
		if len(paths) > 0 {
			cfg.OutputPaths = paths
		}
	}
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// LevelFor maps the CLI verbosity flags to a level name.
func LevelFor(verbose, debug bool) string {
	switch {
	case debug:
		return "debug"
	case verbose:
		return "info"
	default:
		return "warn"
	}
}

// New builds a JSON logger writing to stderr at warn level unless options
// say otherwise.
func New(opts ...Option) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg.Build()
}

// Sync flushes the logger, ignoring the errors terminals and pipes return
// for fsync.
func Sync(logger *zap.Logger) error {
	err := logger.Sync()
	if err == nil ||
		errors.Is(err, syscall.ENOTTY) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EBADF) {
		return nil
	}
	return err
}
