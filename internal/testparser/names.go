package testparser

import "strings"

const (
	moduleSeparator = "::"
	// nextestSeparator splits the binary id from the test path in nextest names,
	// e.g. "my_crate::my_crate$tests::adds".
	nextestSeparator = "$"

	doctestModule = "doctests"
	defaultModule = "tests"
)

// isDoctest reports whether id looks like "src/lib.rs - add (line 7)".
func isDoctest(id string) bool {
	return strings.Contains(id, " - ") && strings.Contains(id, " (line ")
}

// ModuleName maps a raw test identifier to the module it is reported under.
func ModuleName(id string) string {
	if isDoctest(id) {
		return doctestModule
	}

	// Integration tests: "tests/integration.rs: test_basic"
	if strings.HasPrefix(id, "tests/") && strings.Contains(id, ":") {
		file, _, _ := strings.Cut(id, ":")
		return strings.ReplaceAll(strings.TrimSuffix(file, ".rs"), "/", moduleSeparator)
	}

	if module, _, ok := strings.Cut(id, nextestSeparator); ok {
		// Only the exact "x::x" shape around the last separator is collapsed.
		if i := strings.LastIndex(module, moduleSeparator); i >= 0 {
			prefix, suffix := module[:i], module[i+len(moduleSeparator):]
			if prefix == suffix {
				return prefix
			}
		}
		return module
	}

	if module, _, ok := strings.Cut(id, moduleSeparator); ok {
		return module
	}
	return defaultModule
}

// SimpleName maps a raw test identifier to its short display name.
func SimpleName(id string) string {
	if isDoctest(id) {
		if _, after, ok := strings.Cut(id, " - "); ok {
			if name, _, ok := strings.Cut(after, " (line "); ok {
				return name
			}
		}
	}

	if strings.HasPrefix(id, "tests/") {
		if _, name, ok := strings.Cut(id, ": "); ok {
			return name
		}
	}

	if _, name, ok := strings.Cut(id, nextestSeparator); ok {
		return name
	}

	if i := strings.LastIndex(id, moduleSeparator); i >= 0 {
		return id[i+len(moduleSeparator):]
	}
	return id
}

// FullName is the identifier with nextest's "$" replaced by "::".
func FullName(id string) string {
	return strings.ReplaceAll(id, nextestSeparator, moduleSeparator)
}

// ModuleName returns the module the test is grouped under.
func (e CaseEvent) ModuleName() string { return ModuleName(e.Name) }

// SimpleName returns the short display name of the test.
func (e CaseEvent) SimpleName() string { return SimpleName(e.Name) }

// FullName returns the fully-qualified, "$"-free name of the test.
func (e CaseEvent) FullName() string { return FullName(e.Name) }
