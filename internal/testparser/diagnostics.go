package testparser

import (
	"regexp"
	"strconv"
	"strings"
)

// Static regexes for rustc diagnostic lines.
var (
	codedErrorRegex = regexp.MustCompile(`error\[(E\d+)\]:\s*(.+)`)
	plainErrorRegex = regexp.MustCompile(`error:\s*(.+)`)
	locationRegex   = regexp.MustCompile(`(?:-->|--&gt;)\s*(.+?):(\d+):(\d+)`)
	helpRegex       = regexp.MustCompile(`^\s*help:\s*(.+)`)
	noteRegex       = regexp.MustCompile(`^\s*note:\s*(.+)`)
)

// compilationFailedMessage is the message of the synthetic record emitted when
// error markers are present but no diagnostic could be reconstructed.
const compilationFailedMessage = "Compilation failed"

// runnerBoilerplate are cargo/libtest messages that look like errors but never
// describe a compiler diagnostic.
var runnerBoilerplate = []string{
	"aborting due to",
	"test failed, to rerun",
	"test run failed",
}

// runnerErrorMessages are `error: ...` payloads that belong to the test runner.
var runnerErrorMessages = []string{
	"test failed",
	"test run failed",
	"aborting due to",
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// cursor is the reconstructor state: either idle (active == false) or
// accumulating the error that is currently being built.
type cursor struct {
	current CompilationError
	active  bool
}

// ReconstructDiagnostics extracts compiler errors from console output.
// Lines are normalized first, so colored rustc output is accepted as is.
// It never fails: unrecognized lines are dropped, and when error markers are
// present but nothing could be reconstructed a single "Compilation failed"
// record carrying the whole input as its note is returned.
func ReconstructDiagnostics(lines []string) []CompilationError {
	cleaned := NormalizeLines(lines)

	var errs []CompilationError
	var c cursor
	for _, line := range cleaned {
		var finished *CompilationError
		c, finished = advance(c, line)
		if finished != nil {
			errs = append(errs, *finished)
		}
	}
	if c.active {
		errs = append(errs, c.current)
	}

	if len(errs) == 0 && hasErrorMarker(cleaned) {
		errs = append(errs, CompilationError{
			Message: compilationFailedMessage,
			Note:    strings.Join(cleaned, "\n"),
		})
	}

	return errs
}

// advance consumes one normalized line. It returns the next cursor and, when
// the line opened a new error, the error that was in progress before it.
func advance(c cursor, line string) (cursor, *CompilationError) {
	if containsAny(line, runnerBoilerplate) {
		return c, nil
	}

	if started, ok := parseErrorLine(line); ok {
		next := cursor{current: started, active: true}
		if c.active {
			prev := c.current
			return next, &prev
		}
		return next, nil
	}

	if !c.active {
		return c, nil
	}

	if m := locationRegex.FindStringSubmatch(line); m != nil {
		c.current.File = m[1]
		c.current.Line, c.current.Column = parsePosition(m[2], m[3])
	} else if m := helpRegex.FindStringSubmatch(line); m != nil {
		c.current.Help = appendLine(c.current.Help, m[1])
	} else if m := noteRegex.FindStringSubmatch(line); m != nil {
		c.current.Note = appendLine(c.current.Note, m[1])
	}
	return c, nil
}

// parsePosition parses a line/column pair as unsigned 32-bit numbers. Both are
// 0 (unknown) when either does not fit.
func parsePosition(line, column string) (int, int) {
	l, err := strconv.ParseUint(line, 10, 32)
	if err != nil {
		return 0, 0
	}
	c, err := strconv.ParseUint(column, 10, 32)
	if err != nil {
		return 0, 0
	}
	return int(l), int(c)
}

// parseErrorLine reports whether line opens a new diagnostic.
func parseErrorLine(line string) (CompilationError, bool) {
	if m := codedErrorRegex.FindStringSubmatch(line); m != nil {
		return CompilationError{Code: m[1], Message: m[2]}, true
	}

	if m := plainErrorRegex.FindStringSubmatch(line); m != nil {
		message := m[1]
		if containsAny(message, runnerErrorMessages) {
			return CompilationError{}, false
		}
		return CompilationError{Message: message}, true
	}

	return CompilationError{}, false
}

// hasErrorMarker reports whether any non-boilerplate line looks like an error.
func hasErrorMarker(lines []string) bool {
	for _, l := range lines {
		if !strings.Contains(l, "error:") && !strings.Contains(l, "error[E") {
			continue
		}
		if containsAny(l, runnerErrorMessages) {
			continue
		}
		return true
	}
	return false
}

func appendLine(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + "\n" + text
}
