// Package output provides formatted terminal output for the CLI.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(os.Stdout) && !color.NoColor,
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

func (w *Writer) errorln(format string, args ...any) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// paint renders s with the given attributes when color is enabled.
func (w *Writer) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if w.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...any) {
	w.errorln("%s %s", w.paint("warning:", color.FgYellow), fmt.Sprintf(format, args...))
}

// ErrorPrefix prints an error message with the program prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...any) {
	w.errorln("%s %s", w.paint("tdd-guard-rust:", color.FgRed), fmt.Sprintf(format, args...))
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	w.Println("%s", w.paint("=== "+title+" ===", color.Bold, color.FgCyan))
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	w.Println("  %s %s", w.paint(label+":", color.Faint), value)
}

// SummaryPassed prints a passed items summary.
func (w *Writer) SummaryPassed(label, value string) {
	w.Println("  %s %s", w.paint(label+":", color.Faint), w.paint(value, color.FgGreen))
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	w.Println("  %s %s", w.paint(label+":", color.Faint), w.paint(value, color.FgRed))
}

// SummarySectionLabel prints a label for a summary section.
func (w *Writer) SummarySectionLabel(label string) {
	w.Println("  %s", w.paint(label, color.Faint))
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...any) {
	w.Println("")
	w.Println("%s", w.paint(fmt.Sprintf(format, args...), color.FgGreen))
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...any) {
	w.Println("")
	w.Println("%s", w.paint(fmt.Sprintf(format, args...), color.FgRed))
}

// ValidationSuccess prints a validation success message.
func (w *Writer) ValidationSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s %s", w.paint("✓", color.FgGreen), msg)
	} else {
		w.Println("%s", msg)
	}
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...any) {
	w.Println("%s", w.paint(fmt.Sprintf(format, args...), color.Faint))
}

// isTerminal returns true if f is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
