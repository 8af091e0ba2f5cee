package logger

import (
	"sync"
)

var (
	globalLogger *SystemLogger
	mu           sync.RWMutex
)

// Options configure the global logger
type Options struct {
	Sink        EventSink
	Level       string
	Environment string
	Version     string
}

// InitGlobalLogger replaces the global system logger
func InitGlobalLogger(opts Options) *SystemLogger {
	config := SystemLoggerConfig{
		EnableConsole: true,
		EnableSink:    opts.Sink != nil,
		MinLevel:      ParseLevel(opts.Level),
		Service:       "checkout",
		Version:       opts.Version,
		Environment:   opts.Environment,
	}

	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.Environment == "development" {
		config.MinLevel = LevelDebug
	}

	l := NewSystemLogger(nil, opts.Sink, config)
	SetGlobalLogger(l)
	return l
}

// SetGlobalLogger installs l as the global logger
func SetGlobalLogger(l *SystemLogger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = l
}

// GetGlobalLogger returns the global logger, building a console-only one on first use
func GetGlobalLogger() *SystemLogger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		globalLogger = NewSystemLogger(nil, nil, SystemLoggerConfig{
			EnableConsole: true,
			MinLevel:      LevelInfo,
			Service:       "checkout",
			Environment:   "development",
		})
	}
	return globalLogger
}

// Debug logs a debug message using the global logger
func Debug(message string, ctx ...LogContext) {
	GetGlobalLogger().Debug(message, ctx...)
}

// Info logs an info message using the global logger
func Info(message string, ctx ...LogContext) {
	GetGlobalLogger().Info(message, ctx...)
}

// Warn logs a warning message using the global logger
func Warn(message string, ctx ...LogContext) {
	GetGlobalLogger().Warn(message, ctx...)
}

// Error logs an error message using the global logger
func Error(message string, err error, ctx ...LogContext) {
	GetGlobalLogger().Error(message, err, ctx...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, ctx ...LogContext) {
	GetGlobalLogger().Fatal(message, err, ctx...)
}

// WithContext creates a context logger from the global logger
func WithContext(ctx LogContext) *ContextLogger {
	return GetGlobalLogger().WithContext(ctx)
}

// WithProvider creates a context logger with provider
func WithProvider(provider string) *ContextLogger {
	return WithContext(LogContext{Provider: provider})
}

// WithProjectAndProvider creates a context logger with project and provider
func WithProjectAndProvider(projectID, provider string) *ContextLogger {
	return WithContext(LogContext{
		ProjectID: projectID,
		Provider:  provider,
	})
}
