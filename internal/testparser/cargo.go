package testparser

import (
	"regexp"
	"strconv"
	"strings"
)

// Static regexes for human-readable libtest output.
// Compiled once at package init for performance.
var (
	cargoResultRegex  = regexp.MustCompile(`test result: (\w+)\.\s*(\d+) passed;\s*(\d+) failed;\s*(\d+) ignored`)
	cargoCaseRegex    = regexp.MustCompile(`^test (.+?) \.\.\. (ok|FAILED|ignored)(?:,.*)?$`)
	cargoSectionRegex = regexp.MustCompile(`^---- (.+?) (stdout|stderr) ----$`)
)

// Parser converts captured runner output into test events.
type Parser interface {
	// Parse extracts events from the runner's stdout lines.
	Parse(lines []string) []TestEvent
	// Name returns the name of the parser.
	Name() string
}

// JSONParser parses libtest JSON output (one record per line).
type JSONParser struct{}

// Name returns the parser name.
func (p *JSONParser) Name() string {
	return "json"
}

// Parse decodes every JSON line and drops the rest.
func (p *JSONParser) Parse(lines []string) []TestEvent {
	return DecodeEvents(lines)
}

// CargoParser parses the default human-readable libtest output, used when the
// toolchain refuses `--format json`. It recognizes:
//
//	test tests::adds ... ok
//	test tests::subtracts ... FAILED
//	---- tests::subtracts stdout ----
//	test result: FAILED. 1 passed; 1 failed; 0 ignored; 0 measured; 0 filtered out; finished in 0.00s
//
// Failure sections are attached to the matching test as captured stdout/stderr.
type CargoParser struct{}

// Name returns the parser name.
func (p *CargoParser) Name() string {
	return "cargo"
}

// Parse extracts case and suite events from human-readable cargo output.
func (p *CargoParser) Parse(lines []string) []TestEvent {
	cleaned := NormalizeLines(lines)
	sections := collectSections(cleaned)

	var events []TestEvent
	for _, line := range cleaned {
		if m := cargoCaseRegex.FindStringSubmatch(line); m != nil {
			ev := CaseEvent{Name: m[1], Event: plainOutcome(m[2])}
			if ev.Event == OutcomeFailed {
				if out, ok := sections[sectionKey{m[1], "stdout"}]; ok {
					ev.Stdout = &out
				}
				if errOut, ok := sections[sectionKey{m[1], "stderr"}]; ok {
					ev.Stderr = &errOut
				}
			}
			events = append(events, ev)
			continue
		}
		if m := cargoResultRegex.FindStringSubmatch(line); m != nil {
			events = append(events, parseSuiteSummary(m))
		}
	}
	return events
}

type sectionKey struct {
	test   string
	stream string
}

// collectSections gathers "---- name stdout ----" blocks. A block ends at the
// next block header or at the "failures:" list that follows the blocks.
func collectSections(lines []string) map[sectionKey]string {
	sections := make(map[sectionKey]string)
	var key sectionKey
	var body []string
	inSection := false

	flush := func() {
		if inSection {
			sections[key] = strings.TrimSpace(strings.Join(body, "\n"))
		}
		inSection = false
		body = nil
	}

	for _, line := range lines {
		if m := cargoSectionRegex.FindStringSubmatch(line); m != nil {
			flush()
			key = sectionKey{test: m[1], stream: m[2]}
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.TrimSpace(line) == "failures:" || cargoResultRegex.MatchString(line) {
			flush()
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

func plainOutcome(status string) string {
	if status == "FAILED" {
		return OutcomeFailed
	}
	return status
}

func parseSuiteSummary(m []string) SuiteEvent {
	passed, _ := strconv.ParseUint(m[2], 10, 32)
	failed, _ := strconv.ParseUint(m[3], 10, 32)
	ignored, _ := strconv.ParseUint(m[4], 10, 32)

	event := OutcomeOK
	if m[1] != "ok" {
		event = OutcomeFailed
	}
	return SuiteEvent{
		Event:   event,
		Passed:  uint32(passed),
		Failed:  uint32(failed),
		Ignored: uint32(ignored),
	}
}

// HasCaseEvents reports whether events contains at least one test-level record.
func HasCaseEvents(events []TestEvent) bool {
	for _, ev := range events {
		if _, ok := ev.(CaseEvent); ok {
			return true
		}
	}
	return false
}
