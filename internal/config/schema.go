// Package config loads the optional reporter configuration file.
package config

// Config represents the .tdd-guard-rust.yaml configuration.
type Config struct {
	// Runner selects the test runner: auto, cargo, or nextest.
	Runner string `yaml:"runner,omitempty"`
	// AutoPassthrough enables passthrough when stdin is piped.
	AutoPassthrough *bool `yaml:"auto_passthrough,omitempty"`
	// PlainOutput enables parsing of human-readable libtest output.
	PlainOutput *bool `yaml:"plain_output,omitempty"`
	// DataDir is the report directory, relative to the project root.
	DataDir string     `yaml:"data_dir,omitempty"`
	Log     *LogConfig `yaml:"log,omitempty"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	Filename   string `yaml:"filename,omitempty"`
	Level      string `yaml:"level,omitempty"`
	MaxSize    int    `yaml:"max_size,omitempty"` // megabytes
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAge     int    `yaml:"max_age,omitempty"` // days
	Compress   bool   `yaml:"compress,omitempty"`
}

// AutoPassthroughEnabled reports the auto passthrough setting, true if unset.
func (c *Config) AutoPassthroughEnabled() bool {
	return c.AutoPassthrough == nil || *c.AutoPassthrough
}

// PlainOutputEnabled reports the plain output setting, true if unset.
func (c *Config) PlainOutputEnabled() bool {
	return c.PlainOutput == nil || *c.PlainOutput
}
