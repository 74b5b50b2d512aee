package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// detectUnknownFields compares decoded YAML keys with known struct fields.
func detectUnknownFields(raw map[string]any) []string {
	var warnings []string

	known := getYAMLFields(reflect.TypeOf(Config{}))
	for _, key := range sortedKeys(raw) {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if logRaw, ok := raw["log"].(map[string]any); ok {
		knownLog := getYAMLFields(reflect.TypeOf(LogConfig{}))
		for _, key := range sortedKeys(logRaw) {
			if !knownLog[key] {
				warnings = append(warnings, fmt.Sprintf("unknown field %q in log (ignored)", key))
			}
		}
	}

	return warnings
}

// getYAMLFields returns a map of known YAML field names for a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}

func sortedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
