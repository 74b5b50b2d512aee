package testparser

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Record type tags used by libtest (and nextest in libtest-json mode).
const (
	typeSuite = "suite"
	typeTest  = "test"
)

type taggedRecord struct {
	Type string `json:"type"`
}

type suiteRecord struct {
	Event   *string `json:"event"`
	Passed  uint32  `json:"passed"`
	Failed  uint32  `json:"failed"`
	Ignored uint32  `json:"ignored"`
}

type testRecord struct {
	Name   *string `json:"name"`
	Event  *string `json:"event"`
	Stdout *string `json:"stdout"`
	Stderr *string `json:"stderr"`
}

// DecodeEvent decodes one line of libtest JSON output.
//
// Records tagged "suite" or "test" that carry their required fields become
// SuiteEvent or CaseEvent. Any other well-formed JSON value becomes an
// OtherEvent. Lines that are not JSON at all (runner banners, compiler text)
// yield ok == false and are meant to be dropped.
func DecodeEvent(line string) (TestEvent, bool) {
	data := []byte(strings.TrimSpace(line))
	if len(data) == 0 || !json.Valid(data) {
		return nil, false
	}

	if data[0] == '{' {
		var tag taggedRecord
		if err := json.Unmarshal(data, &tag); err == nil {
			switch tag.Type {
			case typeSuite:
				if ev, ok := decodeSuite(data); ok {
					return ev, true
				}
			case typeTest:
				if ev, ok := decodeCase(data); ok {
					return ev, true
				}
			}
		}
	}

	return OtherEvent{Raw: bytes.Clone(data)}, true
}

func decodeSuite(data []byte) (SuiteEvent, bool) {
	var rec suiteRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.Event == nil {
		return SuiteEvent{}, false
	}
	return SuiteEvent{
		Event:   *rec.Event,
		Passed:  rec.Passed,
		Failed:  rec.Failed,
		Ignored: rec.Ignored,
	}, true
}

func decodeCase(data []byte) (CaseEvent, bool) {
	var rec testRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.Name == nil || rec.Event == nil {
		return CaseEvent{}, false
	}
	return CaseEvent{
		Name:   *rec.Name,
		Event:  *rec.Event,
		Stdout: rec.Stdout,
		Stderr: rec.Stderr,
	}, true
}

// DecodeEvents decodes every line, silently dropping the ones that are not JSON.
func DecodeEvents(lines []string) []TestEvent {
	var events []TestEvent
	for _, line := range lines {
		if ev, ok := DecodeEvent(line); ok {
			events = append(events, ev)
		}
	}
	return events
}

// ErrorMessage joins the captured output of a test: trimmed stdout first,
// then trimmed stderr, separated by a newline when both are non-empty.
// It returns false when nothing was captured.
func (e CaseEvent) ErrorMessage() (string, bool) {
	var b strings.Builder
	if e.Stdout != nil {
		b.WriteString(strings.TrimSpace(*e.Stdout))
	}
	if e.Stderr != nil {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimSpace(*e.Stderr))
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
