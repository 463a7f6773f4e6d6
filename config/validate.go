package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")

	// ErrInvalidMaxBytes indicates a negative input size limit
	ErrInvalidMaxBytes = errors.New("invalid max bytes")

	// ErrInvalidEngineRule indicates a malformed engines entry
	ErrInvalidEngineRule = errors.New("invalid engine rule")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: must be debug, info, warn or error, got '%s'", ErrInvalidLogLevel, cfg.Log.Level))
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'text' or 'json', got '%s'", ErrInvalidLogFormat, cfg.Log.Format))
	}

	if cfg.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidMaxBytes, cfg.MaxBytes))
	}

	for i, rule := range cfg.Engines {
		if !doublestar.ValidatePattern(rule.Glob) || rule.Glob == "" {
			errs = append(errs, fmt.Errorf("%w: engines[%d]: bad glob '%s'", ErrInvalidEngineRule, i, rule.Glob))
		}
		if rule.Engine == "" {
			errs = append(errs, fmt.Errorf("%w: engines[%d]: engine is required", ErrInvalidEngineRule, i))
		}
	}

	return errors.Join(errs...)
}
