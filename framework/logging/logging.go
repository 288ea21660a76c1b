// Package logging builds the application's zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-genius/framework/config"
)

// New builds a logger writing cfg.Encoding records at cfg.Level or above to
// cfg.Output ("stderr", "stdout" or a file path).
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Encoding == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = cfg.Encoding
	zc.OutputPaths = []string{cfg.Output}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return logger, nil
}

// Constructor adapts New for the container: arguments are level, encoding
// and output, in that order.
func Constructor(args []any) (any, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("logging: expects level, encoding and output, got %d arguments", len(args))
	}

	var cfg config.LogConfig
	for i, dst := range []*string{&cfg.Level, &cfg.Encoding, &cfg.Output} {
		s, ok := args[i].(string)
		if !ok {
			return nil, fmt.Errorf("logging: argument %d must be a string, got %T", i, args[i])
		}
		*dst = s
	}
	return New(cfg)
}
