package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/tddguard/cargo-reporter/internal/errors"
	"github.com/tddguard/cargo-reporter/internal/logging"
)

// RunnerNames lists the accepted values of the runner field.
var RunnerNames = []string{"auto", "cargo", "cargo-test", "test", "nextest"}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with defaults applied. Errors are
// *errors.ReporterError of kind Config wrapping a *ValidationError.
func Validate(cfg *Config) error {
	for _, check := range []func(*Config) *ValidationError{
		validateRunner,
		validateDataDir,
		validateLog,
	} {
		if verr := check(cfg); verr != nil {
			return &errors.ReporterError{
				Kind:    errors.KindConfig,
				Message: "invalid configuration",
				Cause:   verr,
			}
		}
	}
	return nil
}

func validateRunner(cfg *Config) *ValidationError {
	if !slices.Contains(RunnerNames, cfg.Runner) {
		return &ValidationError{
			Field:   "runner",
			Message: fmt.Sprintf("must be one of %v, got %q", RunnerNames, cfg.Runner),
		}
	}
	return nil
}

func validateDataDir(cfg *Config) *ValidationError {
	if filepath.IsAbs(cfg.DataDir) {
		return &ValidationError{Field: "data_dir", Message: "must be relative to the project root"}
	}
	return nil
}

func validateLog(cfg *Config) *ValidationError {
	if cfg.Log == nil {
		return nil
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return &ValidationError{Field: "log.level", Message: err.Error()}
	}
	if cfg.Log.MaxSize < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAge < 0 {
		return &ValidationError{Field: "log", Message: "rotation limits must not be negative"}
	}
	return nil
}
