// Package logger owns the process-wide zap sugared logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	root *zap.Logger
	once sync.Once
)

// Init builds the global logger for the given environment. Production gets
// JSON output at info level; any other environment gets a console encoder
// at debug level. Safe to call more than once; only the first call wins.
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		built, err := cfg.Build(zap.AddCallerSkip(0))
		if err != nil {
			built = zap.NewNop()
		}
		root = built.Named("ledgerspace")
	})
}

// Get returns the global sugared logger, initializing a development
// logger if Init was never called.
func Get() *zap.SugaredLogger {
	if root == nil {
		Init("development")
	}
	return root.Sugar()
}

// Named returns a sugared child logger scoped to a component, e.g.
// logger.Named("audit").
func Named(scope string) *zap.SugaredLogger {
	if root == nil {
		Init("development")
	}
	return root.Named(scope).Sugar()
}

// Sync flushes buffered entries. Call before process exit.
func Sync() {
	if root != nil {
		_ = root.Sync()
	}
}
