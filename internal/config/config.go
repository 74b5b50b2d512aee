package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/tddguard/cargo-reporter/internal/errors"
	"github.com/tddguard/cargo-reporter/internal/schema"
)

// FileName is the per-project configuration file.
const FileName = ".tdd-guard-rust.yaml"

// SearchPaths returns the configuration candidates in lookup order.
func SearchPaths(projectRoot string) []string {
	return []string{
		filepath.Join(projectRoot, FileName),
		filepath.Join(xdg.ConfigHome, "tdd-guard", "rust.yaml"),
	}
}

// Find returns the first existing configuration file, or "" if none exists.
func Find(projectRoot string) string {
	for _, p := range SearchPaths(projectRoot) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Parse decodes YAML configuration data and checks it against the schema.
// Unknown keys are reported as warnings.
func Parse(data []byte) (*Config, []string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Validation("failed to parse config file", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, errors.Validation("config is not representable as JSON", err)
	}
	if err := schema.ValidateConfig(doc); err != nil {
		return nil, nil, errors.Validation("invalid config", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, errors.Validation("failed to parse config file", err)
	}

	return &cfg, detectUnknownFields(raw), nil
}

// Load reads and parses a configuration file without applying defaults.
func Load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Configf("failed to read config file: %v", err)
	}

	cfg, warnings, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, warnings, nil
}

// LoadAndValidate resolves the configuration for a project, applies defaults,
// and validates the result.
//
// An explicit path must exist. Without one, SearchPaths is consulted and a
// missing file yields the defaults. The returned path is "" when no file was
// read.
func LoadAndValidate(projectRoot, explicit string) (*Config, string, []string, error) {
	path := explicit
	if path == "" {
		path = Find(projectRoot)
	}
	if path == "" {
		return Default(), "", nil, nil
	}

	cfg, warnings, err := Load(path)
	if err != nil {
		return nil, path, nil, err
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, path, warnings, err
	}
	return cfg, path, warnings, nil
}

// ParseSwitch interprets an on/off environment value. "0", "false", "no" and
// "off" (any case) are off; every other value is on.
func ParseSwitch(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
