// Package testparser turns raw cargo test output into structured records:
// compiler diagnostics reconstructed from console text, and libtest JSON
// events decoded line by line.
package testparser

// CompilationError is one compiler diagnostic reconstructed from console output.
// Line and Column are 1-based; zero means absent. They are only ever set
// together with File, from a single location line.
type CompilationError struct {
	Code    string `json:"code,omitempty"` // e.g. "E0432"
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
	Help    string `json:"help,omitempty"` // newline-joined help lines
	Note    string `json:"note,omitempty"` // newline-joined note lines
}

// HasPosition reports whether the error carries a full file:line:col location.
func (e CompilationError) HasPosition() bool {
	return e.File != "" && e.Line > 0 && e.Column > 0
}

// Outcome tags emitted by libtest for test-level events.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeIgnored = "ignored"
	OutcomeStarted = "started"
)

// TestEvent is one decoded libtest JSON record. The set of variants is closed:
// SuiteEvent, CaseEvent and OtherEvent.
type TestEvent interface {
	testEvent()
}

// SuiteEvent is a suite-level record with aggregate counts.
type SuiteEvent struct {
	Event   string
	Passed  uint32
	Failed  uint32
	Ignored uint32
}

// CaseEvent is a test-level record.
type CaseEvent struct {
	Name   string // raw identifier, e.g. "my_crate::tests::adds" or "crate$tests::adds"
	Event  string // outcome tag, see Outcome* constants
	Stdout *string
	Stderr *string
}

// OtherEvent is any other well-formed JSON record. It is kept so that callers
// can tell "structured output present" apart from "no structured output".
type OtherEvent struct {
	Raw []byte
}

func (SuiteEvent) testEvent() {}
func (CaseEvent) testEvent()  {}
func (OtherEvent) testEvent() {}
