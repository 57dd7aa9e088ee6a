package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(levelStr, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(levelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build(zap.AddCaller())
}

// Init builds a logger and installs it as the process-wide default,
// so packages can log via zap.S() / zap.L().
func Init(levelStr, format string) error {
	base, err := NewLogger(levelStr, format)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(base)
	return nil
}
