// Package report builds the TDD Guard test report from decoded test events
// and reconstructed compiler diagnostics.
package report

// Test states as written to the report.
const (
	StatePassed  = "passed"
	StateFailed  = "failed"
	StateSkipped = "skipped"
)

// Overall verdicts.
const (
	ReasonPassed = "passed"
	ReasonFailed = "failed"
)

// CompilationModuleID is reserved for build failures. It never holds
// individual test outcomes.
const CompilationModuleID = "compilation"

// Report is the root document persisted for TDD Guard.
type Report struct {
	TestModules []TestModule `json:"testModules"`
	Reason      string       `json:"reason,omitempty"`
}

// TestModule groups the results of one module.
type TestModule struct {
	ModuleID string       `json:"moduleId"`
	Tests    []TestResult `json:"tests"`
}

// TestResult is one reportable test outcome.
type TestResult struct {
	Name     string      `json:"name"`
	FullName string      `json:"fullName"`
	State    string      `json:"state"`
	Errors   []TestError `json:"errors,omitempty"`
}

// TestError is one failure detail attached to a TestResult.
type TestError struct {
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
	Code     string `json:"code,omitempty"`
	Help     string `json:"help,omitempty"`
	Note     string `json:"note,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// Counts holds aggregate test result counts for a report.
type Counts struct {
	Passed  int
	Failed  int
	Skipped int
	Total   int
}

// Add adds another Counts to this one.
func (c *Counts) Add(other *Counts) {
	if other == nil {
		return
	}
	c.Passed += other.Passed
	c.Failed += other.Failed
	c.Skipped += other.Skipped
	c.Total += other.Total
}

// Counts tallies the states of every result in the report, the synthetic
// build entry included.
func (r *Report) Counts() Counts {
	var c Counts
	for _, m := range r.TestModules {
		for _, t := range m.Tests {
			switch t.State {
			case StatePassed:
				c.Passed++
			case StateFailed:
				c.Failed++
			case StateSkipped:
				c.Skipped++
			}
			c.Total++
		}
	}
	return c
}

// FailedTest holds information about a single failed test.
type FailedTest struct {
	Module string
	Name   string // full name
	Reason string // first error message
}

// FailedTests lists failed results in report order.
func (r *Report) FailedTests() []FailedTest {
	var failed []FailedTest
	for _, m := range r.TestModules {
		for _, t := range m.Tests {
			if t.State != StateFailed {
				continue
			}
			ft := FailedTest{Module: m.ModuleID, Name: t.FullName}
			if len(t.Errors) > 0 {
				ft.Reason = t.Errors[0].Message
			}
			failed = append(failed, ft)
		}
	}
	return failed
}

// Module returns the module with the given id, or nil.
func (r *Report) Module(id string) *TestModule {
	for i := range r.TestModules {
		if r.TestModules[i].ModuleID == id {
			return &r.TestModules[i]
		}
	}
	return nil
}

// Failed reports whether the verdict is failed.
func (r *Report) Failed() bool {
	return r.Reason == ReasonFailed
}
