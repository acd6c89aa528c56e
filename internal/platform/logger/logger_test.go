package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerConfig_ToZapLevel(t *testing.T) {
	testCases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"ERROR":   zapcore.ErrorLevel,
		"dpanic":  zapcore.DPanicLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for level, want := range testCases {
		cfg := &LoggerConfig{Level: level}
		assert.Equal(t, want, cfg.ToZapLevel(), level)
	}
}

func TestDefaultConfig_FromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "Console")

	cfg := DefaultConfig()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.OutputFile)
}

func TestDefaultConfig_Unset(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("LOG_FORMAT", " JSON ")

	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, zapcore.InfoLevel, cfg.ToZapLevel())
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	l := NewLogger(&LoggerConfig{Level: "warn", Format: "json", OutputFile: "stdout"})
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l := NewLogger(&LoggerConfig{Level: "info", Format: "json", OutputFile: path})
	require.NotNil(t, l)
	l.Info("hello")
	_ = l.Sync()
	assert.FileExists(t, path)
}

func TestNamedAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core)).Named("UserUsecase").With(zap.String("component", "test"))

	l.Info("registered")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "UserUsecase", entries[0].LoggerName)
	assert.Equal(t, "test", entries[0].ContextMap()["component"])
}
