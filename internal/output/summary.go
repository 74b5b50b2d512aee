package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tddguard/cargo-reporter/internal/report"
)

// maxReasonWidth truncates failure reasons in the summary table.
const maxReasonWidth = 80

// ReportTable renders every test of a report as a table with one row per
// test: module, test name, state and the first error line.
func (w *Writer) ReportTable(r *report.Report) {
	titleCase := cases.Title(language.English)

	table := tablewriter.NewWriter(w.out)
	table.SetHeader([]string{"Module", "Test", "State", "Reason"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, m := range r.TestModules {
		for _, t := range m.Tests {
			reason := ""
			if len(t.Errors) > 0 {
				reason = firstLine(t.Errors[0].Message)
			}
			table.Append([]string{
				m.ModuleID,
				t.Name,
				w.stateLabel(titleCase.String(t.State), t.State),
				reason,
			})
		}
	}

	table.Render()
}

func (w *Writer) stateLabel(label, state string) string {
	switch state {
	case report.StatePassed:
		return w.paint(label, color.FgGreen)
	case report.StateFailed:
		return w.paint(label, color.FgRed)
	default:
		return w.paint(label, color.FgYellow)
	}
}

// ReportSummary prints the counts, failed tests and verdict of a report.
func (w *Writer) ReportSummary(r *report.Report) {
	counts := r.Counts()

	w.SummaryHeader("Test Summary")

	w.SummaryPassed("Passed", fmt.Sprintf("%d", counts.Passed))
	if counts.Failed > 0 {
		w.SummaryFailed("Failed", fmt.Sprintf("%d", counts.Failed))
	}
	if counts.Skipped > 0 {
		w.SummaryItem("Skipped", fmt.Sprintf("%d", counts.Skipped))
	}
	w.SummaryItem("Total", fmt.Sprintf("%d", counts.Total))

	if failed := r.FailedTests(); len(failed) > 0 {
		w.Println("")
		w.SummarySectionLabel("Failed Tests:")
		for _, ft := range failed {
			w.SummaryFailed("  "+ft.Name, firstLine(ft.Reason))
		}
	}

	if r.Failed() {
		w.FinalFailure("%d of %d tests failed.", counts.Failed, counts.Total)
	} else {
		w.FinalSuccess("All %d tests passed.", counts.Total)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	line = strings.TrimRight(line, "\r")
	if runes := []rune(line); len(runes) > maxReasonWidth {
		line = string(runes[:maxReasonWidth-3]) + "..."
	}
	return line
}
