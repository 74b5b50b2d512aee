package report

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/tddguard/cargo-reporter/internal/testparser"
)

const (
	buildTestName     = "build"
	buildTestFullName = CompilationModuleID + "::" + buildTestName

	// defaultFailureMessage is used when a failed test captured no output.
	defaultFailureMessage = "Test failed"
)

// moduleSet accumulates modules for a single Build call.
type moduleSet map[string]*TestModule

func (s moduleSet) get(id string) *TestModule {
	m, ok := s[id]
	if !ok {
		m = &TestModule{ModuleID: id, Tests: []TestResult{}}
		s[id] = m
	}
	return m
}

// sorted materializes the modules ordered by id.
func (s moduleSet) sorted() []TestModule {
	ids := lo.Keys(s)
	slices.Sort(ids)

	modules := make([]TestModule, 0, len(ids))
	for _, id := range ids {
		modules = append(modules, *s[id])
	}
	return modules
}

// Build merges decoded test events and compiler errors into a report.
//
// Compiler errors become a single failed "build" test in the reserved
// "compilation" module. Case events with an ok/failed/ignored outcome are
// grouped by their resolved module; any other outcome is dropped. The verdict
// is failed when a compilation module exists or any test failed, and passed
// otherwise, including for empty input. Build has no side effects and the
// same input always produces the same report.
func Build(events []testparser.TestEvent, compilationErrors []testparser.CompilationError) *Report {
	modules := make(moduleSet)

	if len(compilationErrors) > 0 {
		addCompilationModule(modules, compilationErrors)
	}

	hasTestFailure := false
	for _, ev := range events {
		c, ok := ev.(testparser.CaseEvent)
		if !ok {
			continue
		}

		state, ok := stateFor(c.Event)
		if !ok {
			continue
		}

		result := TestResult{
			Name:     c.SimpleName(),
			FullName: c.FullName(),
			State:    state,
		}
		if state == StateFailed {
			hasTestFailure = true
			result.Errors = buildTestErrors(c)
		}

		m := modules.get(c.ModuleName())
		m.Tests = append(m.Tests, result)
	}

	reason := ReasonPassed
	if _, ok := modules[CompilationModuleID]; ok || hasTestFailure {
		reason = ReasonFailed
	}

	return &Report{
		TestModules: modules.sorted(),
		Reason:      reason,
	}
}

func stateFor(outcome string) (string, bool) {
	switch outcome {
	case testparser.OutcomeOK:
		return StatePassed, true
	case testparser.OutcomeFailed:
		return StateFailed, true
	case testparser.OutcomeIgnored:
		return StateSkipped, true
	default:
		return "", false
	}
}

func addCompilationModule(modules moduleSet, errs []testparser.CompilationError) {
	testErrors := make([]TestError, 0, len(errs))
	for _, e := range errs {
		testErrors = append(testErrors, FormatCompilationError(e))
	}

	m := modules.get(CompilationModuleID)
	m.Tests = append(m.Tests, TestResult{
		Name:     buildTestName,
		FullName: buildTestFullName,
		State:    StateFailed,
		Errors:   testErrors,
	})
}

// FormatCompilationError maps a compiler diagnostic to a report error.
// The message reads "[code] file:line:col: message", where the code prefix and
// the location prefix each appear only when known.
func FormatCompilationError(e testparser.CompilationError) TestError {
	message := e.Message
	if e.HasPosition() {
		message = fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, message)
	}
	if e.Code != "" {
		message = fmt.Sprintf("[%s] %s", e.Code, message)
	}

	var location string
	switch {
	case e.HasPosition():
		location = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
	case e.File != "":
		location = e.File
	}

	return TestError{
		Message:  message,
		Location: location,
		Code:     e.Code,
		Help:     e.Help,
		Note:     e.Note,
	}
}

func buildTestErrors(c testparser.CaseEvent) []TestError {
	message, ok := c.ErrorMessage()
	if !ok {
		message = defaultFailureMessage
	}

	d := ExtractAssertionDetails(message)
	return []TestError{{
		Message:  d.Message,
		Expected: d.Expected,
		Actual:   d.Actual,
	}}
}
