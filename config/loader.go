package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// envKeys are the settings that can be overridden with SNIPQ_* variables.
var envKeys = []string{
	"engine",
	"language",
	"gap_filler",
	"no_gap_filler",
	"undent",
	"strict",
	"continue_on_error",
	"max_bytes",
	"log.level",
	"log.format",
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SNIPQ_*)
// 2. Config file (.snipq.yaml in dir, then in the home directory)
// 3. Default values
func Load(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(".snipq")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFile loads configuration from an explicit file, which must exist.
// Environment variables still win over its values.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Replace . with _ in env var names (e.g., SNIPQ_LOG_LEVEL)
	v.SetEnvPrefix("SNIPQ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("engine", defaults.Engine)
	v.SetDefault("language", defaults.Language)
	v.SetDefault("gap_filler", defaults.GapFiller)
	v.SetDefault("no_gap_filler", defaults.NoGapFiller)
	v.SetDefault("undent", defaults.Undent)
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("continue_on_error", defaults.ContinueOnError)
	v.SetDefault("max_bytes", defaults.MaxBytes)

	// Log defaults
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}
