// Package pipeline turns captured runner output into a TDD Guard report.
package pipeline

import (
	"github.com/tddguard/cargo-reporter/internal/report"
	"github.com/tddguard/cargo-reporter/internal/testparser"
)

// Options controls optional stages of Process.
type Options struct {
	// PlainOutput enables parsing of human-readable libtest output when no
	// JSON events were decoded.
	PlainOutput bool
}

// Stats describes what Process extracted. Used for logging only.
type Stats struct {
	Events            int
	CompilationErrors int
	PlainFallback     bool
}

var parsers = testparser.NewRegistry()

// Process decodes events from stdout and diagnostics from stderr and merges
// them into a report.
//
// When stdout yielded no events, it is scanned for diagnostics too, since
// some toolchains route compiler output there when stderr is merged.
func Process(stdout, stderr []string, opts Options) (*report.Report, Stats) {
	events := parsers.GetParser(testparser.FormatJSON).Parse(stdout)
	compilationErrors := testparser.ReconstructDiagnostics(stderr)

	var stats Stats
	if len(events) == 0 && len(stdout) > 0 {
		compilationErrors = append(compilationErrors, testparser.ReconstructDiagnostics(stdout)...)

		if opts.PlainOutput {
			plain := parsers.GetParser(testparser.FormatPlain).Parse(stdout)
			if testparser.HasCaseEvents(plain) {
				events = plain
				stats.PlainFallback = true
			}
		}
	}

	stats.Events = len(events)
	stats.CompilationErrors = len(compilationErrors)
	return report.Build(events, compilationErrors), stats
}
