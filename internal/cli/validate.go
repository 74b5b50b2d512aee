package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tddguard/cargo-reporter/internal/errors"
	"github.com/tddguard/cargo-reporter/internal/schema"
)

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a report file against the report schema",
		Long: `Checks FILE, or the saved report of --project-root when FILE is
omitted, against the embedded report schema.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runValidate,
	}
}

func (a *app) runValidate(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		s, err := a.openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		path = s.store.Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Configf("cannot read report: %v", err)
	}
	if err := schema.ValidateReport(data); err != nil {
		return errors.Validation(path, err)
	}

	a.out.ValidationSuccess("%s is a valid report", path)
	return nil
}
