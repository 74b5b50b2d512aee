package config

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tddguard/cargo-reporter/internal/errors"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"defaults", func(*Config) {}, ""},
		{"nextest", func(c *Config) { c.Runner = "nextest" }, ""},
		{"alias", func(c *Config) { c.Runner = "cargo-test" }, ""},
		{"unknown runner", func(c *Config) { c.Runner = "bazel" }, "runner"},
		{"absolute data dir", func(c *Config) { c.DataDir = "/tmp/data" }, "data_dir"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"negative backups", func(c *Config) { c.Log.MaxBackups = -1 }, "log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var re *errors.ReporterError
			require.True(t, stderrors.As(err, &re))
			assert.Equal(t, errors.KindConfig, re.Kind)

			var verr *ValidationError
			require.True(t, stderrors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()
	err := &ValidationError{Field: "runner", Message: "is required"}
	assert.Equal(t, "runner: is required", err.Error())
}
