// Package schema provides embedded JSON schemas for the report document and
// the reporter configuration file.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
