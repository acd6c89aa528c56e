package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig selects the level, encoding and destination of the service log.
type LoggerConfig struct {
	Level      string // zap level name, "warning" is accepted as warn
	Format     string // "json", or "console"/"text"
	OutputFile string // "stdout", "stderr" or a file path
}

// DefaultConfig starts from info/json/stdout and applies LOG_LEVEL, LOG_FORMAT
// and LOG_OUTPUT_FILE when they are set.
func DefaultConfig() *LoggerConfig {
	cfg := &LoggerConfig{Level: "info", Format: "json", OutputFile: "stdout"}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok {
		cfg.Format = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv("LOG_OUTPUT_FILE"); ok {
		cfg.OutputFile = strings.TrimSpace(v)
	}
	return cfg
}

// ToZapLevel parses Level. Unknown names log at info.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	if c.Level == "warning" {
		return zapcore.WarnLevel
	}
	lvl, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
