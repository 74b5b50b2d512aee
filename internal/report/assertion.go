package report

import "strings"

// assertionMarkers are the headlines of assert_eq! and assert_ne! failures.
var assertionMarkers = []string{
	"assertion `left == right` failed",
	"assertion `left != right` failed",
}

const panicMarker = "panicked at '"

// AssertionDetails is the result of ExtractAssertionDetails.
// Expected and Actual are empty when the message carries no comparison.
type AssertionDetails struct {
	Message  string
	Expected string
	Actual   string
}

// ExtractAssertionDetails pulls a headline and the compared values out of a
// test failure message.
//
// For assert_eq!/assert_ne! output the "left:" value is the actual value and
// the "right:" value the expected one; the headline is the first line. For an
// old-style panic ("panicked at 'msg', src/lib.rs:3:5") the headline is
// "panic: msg". Any other message is returned unchanged.
func ExtractAssertionDetails(message string) AssertionDetails {
	for _, marker := range assertionMarkers {
		if strings.Contains(message, marker) {
			return extractComparison(message)
		}
	}

	if _, rest, ok := strings.Cut(message, panicMarker); ok {
		if text, _, ok := strings.Cut(rest, "'"); ok {
			return AssertionDetails{Message: "panic: " + text}
		}
	}

	return AssertionDetails{Message: message}
}

func extractComparison(message string) AssertionDetails {
	lines := strings.Split(message, "\n")
	d := AssertionDetails{Message: strings.TrimSuffix(lines[0], "\r")}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(trimmed, "left:"); ok {
			d.Actual = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(trimmed, "right:"); ok {
			d.Expected = strings.TrimSpace(v)
		}
	}
	return d
}
