package testparser

import "strings"

// Output formats understood by the built-in parsers.
const (
	FormatJSON  = "json"
	FormatPlain = "plain"
)

// Registry maps output format names to their parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates a new parser registry with all built-in parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]Parser),
	}

	jsonParser := &JSONParser{}
	cargoParser := &CargoParser{}

	// Aliases follow the names used by cargo test and cargo nextest flags.
	r.parsers[FormatJSON] = jsonParser
	r.parsers["libtest-json"] = jsonParser
	r.parsers[FormatPlain] = cargoParser
	r.parsers["pretty"] = cargoParser
	r.parsers["human"] = cargoParser
	r.parsers["cargo"] = cargoParser

	return r
}

// GetParser returns the parser for the given format, or nil.
func (r *Registry) GetParser(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// RegisterParser adds a custom parser for a format.
func (r *Registry) RegisterParser(format string, parser Parser) {
	r.parsers[strings.ToLower(format)] = parser
}
