package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitGlobalLogger(t *testing.T) {
	t.Cleanup(func() { SetGlobalLogger(nil) })

	l := InitGlobalLogger(Options{Level: "warn", Environment: "production", Version: "2.0.0"})

	assert.Same(t, l, GetGlobalLogger())
	assert.Equal(t, "checkout", l.service)
	assert.Equal(t, "2.0.0", l.version)
	assert.Equal(t, LevelWarn, l.minLevel)
}

func TestInitGlobalLogger_DevelopmentLogsDebug(t *testing.T) {
	t.Cleanup(func() { SetGlobalLogger(nil) })

	l := InitGlobalLogger(Options{Level: "error"})

	assert.Equal(t, "development", l.environment)
	assert.Equal(t, LevelDebug, l.minLevel)
}

func TestGetGlobalLogger_Fallback(t *testing.T) {
	SetGlobalLogger(nil)
	t.Cleanup(func() { SetGlobalLogger(nil) })

	logger := GetGlobalLogger()
	assert.NotNil(t, logger)
	assert.Equal(t, "checkout", logger.service)
	assert.Same(t, logger, GetGlobalLogger())
}

func TestGlobalLoggerConvenienceFunctions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetGlobalLogger(NewSystemLogger(zap.New(core), nil, SystemLoggerConfig{MinLevel: LevelDebug}))
	t.Cleanup(func() { SetGlobalLogger(nil) })

	Debug("Debug message")
	Info("Info message")
	Warn("Warning message")
	Error("Error message", nil)
	WithProvider("webtopay").Info("provider message")
	WithProjectAndProvider("shop", "webtopay").Warn("project message")

	assert.Equal(t, 6, logs.Len())
	entry := logs.FilterMessage("project message").AllUntimed()[0]
	assert.Equal(t, "shop", entry.ContextMap()["project"])
}
