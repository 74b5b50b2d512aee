package runner

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
)

// AutoPassthroughEnv toggles automatic passthrough when stdin is piped.
const AutoPassthroughEnv = "TDD_GUARD_AUTO_PASSTHROUGH"

// ReadPassthrough reads piped test output line by line, echoing each line to
// echo immediately.
func ReadPassthrough(r io.Reader, echo io.Writer) ([]string, error) {
	return Capture(r, echo)
}

// IsStructured reports whether a passthrough line looks like a libtest JSON
// event.
func IsStructured(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "{") && strings.Contains(line, `"type":`)
}

// PartitionLines splits passthrough input into JSON event lines and
// diagnostic text, preserving order within each part.
func PartitionLines(lines []string) (structured, text []string) {
	return lo.FilterReject(lines, func(line string, _ int) bool {
		return IsStructured(line)
	})
}

// DecidePassthrough chooses between reading stdin and spawning cargo. An
// explicit request wins; otherwise passthrough is used when auto mode is
// enabled and stdin is not a terminal.
func DecidePassthrough(explicit, autoEnabled, stdinIsTerminal bool) bool {
	if explicit {
		return true
	}
	return autoEnabled && !stdinIsTerminal
}

// StdinIsTerminal reports whether stdin is attached to a terminal.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
