// Package cli provides the command-line interface of tdd-guard-rust.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tddguard/cargo-reporter/internal/errors"
	"github.com/tddguard/cargo-reporter/internal/output"
	"github.com/tddguard/cargo-reporter/internal/runner"
)

// Version is set at build time.
var Version = "dev"

const envPrefix = "TDD_GUARD"

// Flag names and their config keys.
const (
	projectRootFlag       = "project-root"
	configFlag            = "config"
	verboseFlag           = "verbose"
	passthroughFlag       = "passthrough"
	noAutoPassthroughFlag = "no-auto-passthrough"
	runnerFlag            = "runner"

	projectRootKey     = "project_root"
	runnerKey          = "runner"
	autoPassthroughKey = "auto_passthrough"
	plainOutputKey     = "plain_output"
	dataDirKey         = "data_dir"
	logLevelKey        = "log.level"
)

// app holds the state of one CLI invocation.
type app struct {
	v        *viper.Viper
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	out      *output.Writer
	registry *runner.Registry

	// stdinIsTerminal is consulted for automatic passthrough.
	stdinIsTerminal func() bool

	exitCode int
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, out *output.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return &app{
		v:               v,
		stdin:           stdin,
		stdout:          stdout,
		stderr:          stderr,
		out:             out,
		registry:        runner.NewRegistry(nil),
		stdinIsTerminal: runner.StdinIsTerminal,
	}
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return newApp(os.Stdin, os.Stdout, os.Stderr, output.New()).run(context.Background(), args)
}

func (a *app) run(ctx context.Context, args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	return a.exitCode
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tdd-guard-rust --project-root PATH [flags] [-- test args...]",
		Short: "Cargo test reporter for TDD Guard",
		Long: `Runs cargo test or cargo nextest, echoes their output, and writes a
structured test report to <project-root>/.claude/tdd-guard/data/test.json.

When stdin is piped (or --passthrough is given) the output of an already
running test command is read from stdin instead.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runReport,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Config(err.Error())
	})

	pf := cmd.PersistentFlags()
	pf.String(projectRootFlag, "", "absolute path of the project root (required)")
	pf.String(configFlag, "", "configuration file (default: search .tdd-guard-rust.yaml, then the user config dir)")
	pf.BoolP(verboseFlag, "v", false, "log at debug level")
	a.bindFlag(pf.Lookup(projectRootFlag), projectRootKey)

	f := cmd.Flags()
	f.Bool(passthroughFlag, false, "read test output from stdin instead of running cargo")
	f.Bool(noAutoPassthroughFlag, false, "do not switch to passthrough when stdin is piped")
	f.String(runnerFlag, "", "test runner: auto, cargo, or nextest (default from config, else auto)")
	a.bindFlag(f.Lookup(runnerFlag), runnerKey)

	cmd.AddCommand(
		a.newSummaryCmd(),
		a.newValidateCmd(),
		a.newVersionCmd(),
	)
	return cmd
}

// bindFlag wires a flag to a viper key so config and env values feed it.
func (a *app) bindFlag(flag *pflag.Flag, key string) {
	if flag == nil {
		panic(fmt.Sprintf("flag for config key %q not found", key))
	}
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// projectRoot returns the validated --project-root value.
func (a *app) projectRoot() (string, error) {
	root := a.v.GetString(projectRootKey)
	if root == "" {
		return "", errors.Configf("--%s is required", projectRootFlag)
	}
	return validateProjectRoot(root)
}

func validateProjectRoot(root string) (string, error) {
	if !filepath.IsAbs(root) {
		return "", errors.Configf("project root must be an absolute path: %s", root)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", errors.Configf("project root does not exist: %s", root)
	}
	if !info.IsDir() {
		return "", errors.Configf("project root is not a directory: %s", root)
	}
	return root, nil
}
