package output

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel is a level name: debug, info, warn or error.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Output io.Writer
}

// DefaultLoggerConfig logs warnings and errors as text to stderr, keeping
// stdout for results.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// Override returns c with the non-empty level and format applied.
func (c LoggerConfig) Override(level, format string) LoggerConfig {
	if level != "" {
		c.Level = LogLevel(level)
	}
	if format != "" {
		c.Format = LogFormat(format)
	}
	return c
}

// NewLogger creates a new structured logger with the given configuration.
// Unknown levels fall back to warn and unknown formats to text.
func NewLogger(config LoggerConfig) *slog.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	if LogFormat(strings.ToLower(string(config.Format))) == FormatJSON {
		return slog.New(slog.NewJSONHandler(config.Output, opts))
	}
	return slog.New(slog.NewTextHandler(config.Output, opts))
}

func parseLevel(level LogLevel) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}
