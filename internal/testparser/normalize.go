package testparser

import "regexp"

// ansiSequenceRegex matches a CSI escape: ESC '[', any parameter or
// intermediate bytes (0x20-0x3F), and a final letter.
var ansiSequenceRegex = regexp.MustCompile("\x1b\\[[\x20-\x3f]*[A-Za-z]")

// Normalize strips terminal color and formatting sequences from s.
// All other characters are returned unchanged. Removal is repeated until
// nothing matches, so Normalize(Normalize(s)) == Normalize(s) even when
// stripping one sequence splices together the pieces of another.
func Normalize(s string) string {
	for {
		stripped := ansiSequenceRegex.ReplaceAllString(s, "")
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// NormalizeLines applies Normalize to every line, returning a new slice.
func NormalizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Normalize(line)
	}
	return out
}
