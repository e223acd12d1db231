package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
)

// GetLogger returns the global logger, falling back to a no-op logger until
// InitLogger or SetLogger has run.
func GetLogger() *zap.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger sets the global logger instance
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Sync flushes buffered entries.
func Sync() {
	_ = GetLogger().Sync()
}

// DebugLog logs a debug message with printf-style formatting
func DebugLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Debugf(msg, args...)
}

// InfoLog logs an info message with printf-style formatting
func InfoLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Infof(msg, args...)
}

// WarnLog logs a warning message with printf-style formatting
func WarnLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Warnf(msg, args...)
}

// ErrorLog logs an error message with printf-style formatting
func ErrorLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Errorf(msg, args...)
}

// FatalLog logs a fatal message with printf-style formatting and exits
func FatalLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Fatalf(msg, args...)
}

// Debug logs a structured debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Info logs a structured info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Warn logs a structured warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs a structured error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}
