package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tddguard/cargo-reporter/internal/config"
	"github.com/tddguard/cargo-reporter/internal/errors"
	"github.com/tddguard/cargo-reporter/internal/output"
	"github.com/tddguard/cargo-reporter/internal/report"
	"github.com/tddguard/cargo-reporter/internal/runner"
	"github.com/tddguard/cargo-reporter/internal/storage"
)

const (
	okLine     = `{ "type": "test", "event": "ok", "name": "calc::tests::adds" }`
	failedLine = `{ "type": "test", "event": "failed", "name": "calc::tests::subtracts", "stdout": "assertion failed: x\n" }`
)

// TestHelperProcess is not a real test. It stands in for cargo when a
// helperRunner is selected.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Println(okLine)
	if os.Getenv("HELPER_MODE") == "failing" {
		fmt.Println(failedLine)
		fmt.Fprintln(os.Stderr, "error: test failed, to rerun pass `--lib`")
		os.Exit(101)
	}
	os.Exit(0)
}

type helperRunner struct{ mode string }

func (helperRunner) Name() string { return "helper" }

func (h helperRunner) Command([]string) runner.Command {
	return runner.Command{
		Path: os.Args[0],
		Args: []string{"-test.run=TestHelperProcess", "--"},
		Env:  []string{"GO_WANT_HELPER_PROCESS=1", "HELPER_MODE=" + h.mode},
	}
}

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(stdin), &stdout, &stderr, output.NewWithWriters(&stdout, &stderr, false))
	a.registry = runner.NewRegistry(func(context.Context) bool { return false })
	a.stdinIsTerminal = func() bool { return true }
	return &harness{app: a, stdout: &stdout, stderr: &stderr}
}

func (h *harness) run(args ...string) int {
	return h.app.run(context.Background(), args)
}

func loadReport(t *testing.T, root string) *report.Report {
	t.Helper()
	r, err := storage.New(root, config.DefaultDataDir).Load()
	require.NoError(t, err)
	return r
}

func TestPassthroughWritesReport(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	h := newHarness(t, okLine+"\n"+failedLine+"\n")

	code := h.run("--project-root", root, "--passthrough")

	assert.Equal(t, errors.ExitSuccess, code, "stderr: %s", h.stderr)
	assert.Contains(t, h.stdout.String(), okLine, "input is echoed")

	r := loadReport(t, root)
	assert.Equal(t, report.ReasonFailed, r.Reason)
	require.Len(t, r.TestModules, 1)
	assert.Equal(t, "calc", r.TestModules[0].ModuleID)
	assert.Len(t, r.TestModules[0].Tests, 2)
}

func TestAutoPassthroughWhenStdinPiped(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	h := newHarness(t, okLine+"\n")
	h.app.stdinIsTerminal = func() bool { return false }

	code := h.run("--project-root", root)

	assert.Equal(t, errors.ExitSuccess, code, "stderr: %s", h.stderr)
	assert.Equal(t, report.ReasonPassed, loadReport(t, root).Reason)
}

func TestPassthroughCompilationErrorFromStdin(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	input := strings.Join([]string{
		"error[E0425]: cannot find value `y` in this scope",
		" --> src/lib.rs:3:5",
		"",
	}, "\n")
	h := newHarness(t, input)

	code := h.run("--project-root", root, "--passthrough")

	assert.Equal(t, errors.ExitSuccess, code, "stderr: %s", h.stderr)
	r := loadReport(t, root)
	require.NotNil(t, r.Module("compilation"))
	assert.Equal(t, report.ReasonFailed, r.Reason)
}

func TestRunnerModeUsesChildExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		mode     string
		wantCode int
		reason   string
	}{
		{"passing", 0, report.ReasonPassed},
		{"failing", 101, report.ReasonFailed},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			h := newHarness(t, "")
			h.app.registry.Register("helper", helperRunner{mode: tt.mode})

			code := h.run("--project-root", root, "--runner", "helper")

			assert.Equal(t, tt.wantCode, code, "stderr: %s", h.stderr)
			assert.Contains(t, h.stdout.String(), okLine)
			assert.Equal(t, tt.reason, loadReport(t, root).Reason)
		})
	}
}

func TestProjectRootErrors(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing", []string{"--passthrough"}, "--project-root is required"},
		{"relative", []string{"--project-root", "relative/path"}, "must be an absolute path"},
		{"nonexistent", []string{"--project-root", filepath.Join(t.TempDir(), "nope")}, "does not exist"},
		{"not a directory", []string{"--project-root", file}, "is not a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, "")
			code := h.run(tt.args...)
			assert.Equal(t, errors.ExitConfigError, code)
			assert.Contains(t, h.stderr.String(), tt.wantErr)
		})
	}
}

func TestUnknownFlagIsConfigError(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "")
	code := h.run("--project-root", t.TempDir(), "--bogus")
	assert.Equal(t, errors.ExitConfigError, code)
	assert.Contains(t, h.stderr.String(), "bogus")
}

func TestInvalidConfigFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tdd-guard-rust.yaml"), []byte("runner: maven\n"), 0o644))

	h := newHarness(t, okLine+"\n")
	code := h.run("--project-root", root, "--passthrough")

	assert.Equal(t, errors.ExitConfigError, code)
	_, err := os.Stat(storage.New(root, config.DefaultDataDir).Path())
	assert.True(t, os.IsNotExist(err), "no report is written")
}

func TestConfigDataDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tdd-guard-rust.yaml"),
		[]byte("data_dir: out/reports\nsurprise: 1\n"), 0o644))

	h := newHarness(t, okLine+"\n")
	code := h.run("--project-root", root, "--passthrough")

	require.Equal(t, errors.ExitSuccess, code, "stderr: %s", h.stderr)
	assert.FileExists(t, filepath.Join(root, "out", "reports", storage.ReportFileName))
	assert.Contains(t, h.stderr.String(), `unknown field "surprise"`)
}

func TestSummary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantCode int
		want     string
	}{
		{"passed", okLine + "\n", errors.ExitSuccess, "All 1 tests passed."},
		{"failed", okLine + "\n" + failedLine + "\n", errors.ExitRuntimeError, "1 of 2 tests failed."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			require.Equal(t, 0, newHarness(t, tt.input).run("--project-root", root, "--passthrough"))

			h := newHarness(t, "")
			code := h.run("summary", "--project-root", root)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", h.stderr)
			assert.Contains(t, h.stdout.String(), tt.want)
			assert.Contains(t, h.stdout.String(), "adds")
		})
	}
}

func TestSummaryWithoutReport(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "")
	code := h.run("summary", "--project-root", t.TempDir())
	assert.Equal(t, errors.ExitRuntimeError, code)
	assert.Contains(t, h.stderr.String(), "no test report found")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	data, err := json.Marshal(report.Build(nil, nil))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(valid, data, 0o644))

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"testModules":[],"reason":"maybe"}`), 0o644))

	h := newHarness(t, "")
	assert.Equal(t, errors.ExitSuccess, h.run("validate", valid), "stderr: %s", h.stderr)
	assert.Contains(t, h.stdout.String(), "is a valid report")

	h = newHarness(t, "")
	assert.Equal(t, errors.ExitConfigError, h.run("validate", invalid))
	assert.Contains(t, h.stderr.String(), invalid)

	h = newHarness(t, "")
	assert.Equal(t, errors.ExitConfigError, h.run("validate", filepath.Join(dir, "missing.json")))
}

func TestValidateSavedReport(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.Equal(t, 0, newHarness(t, okLine+"\n").run("--project-root", root, "--passthrough"))

	h := newHarness(t, "")
	assert.Equal(t, errors.ExitSuccess, h.run("validate", "--project-root", root), "stderr: %s", h.stderr)
}

func TestVersion(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "")
	assert.Equal(t, 0, h.run("version"))
	assert.Equal(t, "tdd-guard-rust "+Version+"\n", h.stdout.String())
}
