package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/tddguard/cargo-reporter/internal/errors"
	"github.com/tddguard/cargo-reporter/internal/report"
	"github.com/tddguard/cargo-reporter/internal/storage"
)

func (a *app) newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the last saved test report",
		Long: `Prints every test of the last saved report as a table, followed by
the counts and failed tests. Exits with status 1 when the verdict is failed.`,
		Args: cobra.NoArgs,
		RunE: a.runSummary,
	}
}

func (a *app) runSummary(cmd *cobra.Command, _ []string) error {
	s, err := a.openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := s.store.Load()
	if stderrors.Is(err, storage.ErrNoReport) {
		a.out.Hint("hint: run tdd-guard-rust --project-root %s first", s.root)
		return errors.Newf("no test report found at %s", s.store.Path())
	}
	if err != nil {
		return err
	}

	a.out.ReportTable(r)
	a.out.ReportSummary(r)

	a.exitCode = verdictExitCode(r)
	return nil
}

// verdictExitCode maps a saved report to the summary exit code.
func verdictExitCode(r *report.Report) int {
	if r.Failed() {
		return errors.ExitRuntimeError
	}
	return errors.ExitSuccess
}
