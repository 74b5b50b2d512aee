package config

// Default configuration values.
const (
	DefaultRunner        = "auto"
	DefaultDataDir       = ".claude/tdd-guard/data"
	DefaultLogFilename   = ".claude/tdd-guard/logs/tdd-guard-rust.log"
	DefaultLogLevel      = "info"
	DefaultLogMaxSize    = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAge     = 28
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Runner == "" {
		cfg.Runner = DefaultRunner
	}
	if cfg.AutoPassthrough == nil {
		cfg.AutoPassthrough = boolPtr(true)
	}
	if cfg.PlainOutput == nil {
		cfg.PlainOutput = boolPtr(true)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	applyLogDefaults(cfg)
}

func applyLogDefaults(cfg *Config) {
	if cfg.Log == nil {
		cfg.Log = &LogConfig{}
	}
	if cfg.Log.Filename == "" {
		cfg.Log.Filename = DefaultLogFilename
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.MaxSize == 0 {
		cfg.Log.MaxSize = DefaultLogMaxSize
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = DefaultLogMaxBackups
	}
	if cfg.Log.MaxAge == 0 {
		cfg.Log.MaxAge = DefaultLogMaxAge
	}
}

func boolPtr(b bool) *bool { return &b }
