// Package schema validates report documents and configuration against the
// embedded JSON schemas.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/tddguard/cargo-reporter/schema"
)

const (
	reportSchemaFile = "report.schema.json"
	configSchemaFile = "config.schema.json"
)

var (
	reportSchema *jsonschema.Schema
	configSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		for _, name := range []string{reportSchemaFile, configSchemaFile} {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		var err error
		reportSchema, err = compiler.Compile(reportSchemaFile)
		if err != nil {
			compileErr = fmt.Errorf("compile report schema: %w", err)
			return
		}

		configSchema, err = compiler.Compile(configSchemaFile)
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateReport validates a JSON report document.
func ValidateReport(data []byte) error {
	return validate(data, func() *jsonschema.Schema { return reportSchema }, "report")
}

// ValidateConfig validates configuration data. YAML config must be converted
// to JSON before it is passed in.
func ValidateConfig(data []byte) error {
	return validate(data, func() *jsonschema.Schema { return configSchema }, "config")
}

func validate(data []byte, schema func() *jsonschema.Schema, what string) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema().Validate(v); err != nil {
		return fmt.Errorf("%s validation failed: %w", what, err)
	}

	return nil
}
