// Package config loads snipq settings from .snipq.yaml and SNIPQ_*
// environment variables.
package config

// Config represents the complete snipq configuration.
// Command-line flags override it when set.
type Config struct {
	Engine          string       `yaml:"engine" mapstructure:"engine"`                       // engine name, empty to detect from the file
	Language        string       `yaml:"language" mapstructure:"language"`                   // grammar hint for multi-language engines
	GapFiller       string       `yaml:"gap_filler" mapstructure:"gap_filler"`               // empty uses the language's line comment
	NoGapFiller     bool         `yaml:"no_gap_filler" mapstructure:"no_gap_filler"`         // concatenate distant selections directly
	Undent          bool         `yaml:"undent" mapstructure:"undent"`                       // strip common indentation
	Strict          bool         `yaml:"strict" mapstructure:"strict"`                       // fail on syntax errors in the source
	ContinueOnError bool         `yaml:"continue_on_error" mapstructure:"continue_on_error"` // skip selections that fail
	MaxBytes        int64        `yaml:"max_bytes" mapstructure:"max_bytes"`                 // refuse larger inputs, 0 for no limit
	Log             LogConfig    `yaml:"log" mapstructure:"log"`
	Engines         []EngineRule `yaml:"engines" mapstructure:"engines"`
}

// LogConfig configures diagnostics written to stderr.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn or error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// EngineRule maps files matching a doublestar glob to an engine. Rules are
// tried in order before falling back to the file extension.
type EngineRule struct {
	Glob     string `yaml:"glob" mapstructure:"glob"`
	Engine   string `yaml:"engine" mapstructure:"engine"`
	Language string `yaml:"language" mapstructure:"language"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		MaxBytes: 2 * 1024 * 1024,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
