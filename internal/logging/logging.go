// Package logging builds the zap logger used across gatesim.
package logging

import (
	"fmt"

	"gatesim/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger from the log section of the config. Development mode
// uses the console encoder with colored levels; otherwise JSON lines.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	// stdout belongs to the command line
	output := "stderr"
	if cfg.File != "" {
		output = cfg.File
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build(zap.AddStacktrace(zap.ErrorLevel))
}

// Must is New for callers that cannot continue without a logger. It falls
// back to a no-op logger.
func Must(cfg config.LogConfig) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
