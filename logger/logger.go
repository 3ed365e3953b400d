// Package logger holds the process-wide zap logger used by the command line
// tool and the HTTP service. Library packages take a *zap.Logger explicitly.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init replaces the global logger: JSON output in production, human readable
// console output otherwise. Debug level is enabled when debug is set.
func Init(env string, debug bool) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set replaces the global logger
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// L returns the global logger
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes buffered log entries
func Sync() error {
	return L().Sync()
}

// Info logs msg at info level on the global logger
func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

// Warn logs msg at warn level on the global logger
func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

// Error logs msg at error level on the global logger
func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}

// Debug logs msg at debug level on the global logger
func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}
