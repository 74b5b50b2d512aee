package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tddguard/cargo-reporter/internal/errors"
)

// TestHelperProcess is not a real test. It is re-executed by helperCommand
// to stand in for cargo.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("HELPER_MODE") {
	case "mixed":
		fmt.Println(`{ "type": "test", "event": "ok", "name": "a::b" }`)
		fmt.Fprintln(os.Stderr, "   Compiling calc v0.1.0")
		fmt.Println(`{ "type": "test", "event": "failed", "name": "a::c" }`)
		fmt.Fprintln(os.Stderr, "error: test failed, to rerun pass `--lib`")
		os.Exit(101)
	case "env":
		fmt.Println(os.Getenv("NEXTEST_EXPERIMENTAL_LIBTEST_JSON"))
		os.Exit(0)
	case "cwd":
		wd, _ := os.Getwd()
		fmt.Println(wd)
		os.Exit(0)
	}
	os.Exit(2)
}

func helperCommand(mode string, extraEnv ...string) Command {
	return Command{
		Path: os.Args[0],
		Args: []string{"-test.run=TestHelperProcess", "--"},
		Env:  append([]string{"GO_WANT_HELPER_PROCESS=1", "HELPER_MODE=" + mode}, extraEnv...),
	}
}

func TestRunCapturesBothStreams(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer

	res, err := Run(context.Background(), helperCommand("mixed"), Options{Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)

	assert.Equal(t, 101, res.ExitCode)
	assert.Equal(t, []string{
		`{ "type": "test", "event": "ok", "name": "a::b" }`,
		`{ "type": "test", "event": "failed", "name": "a::c" }`,
	}, res.Stdout)
	assert.Equal(t, []string{
		"   Compiling calc v0.1.0",
		"error: test failed, to rerun pass `--lib`",
	}, res.Stderr)

	assert.Equal(t, strings.Join(res.Stdout, "\n")+"\n", stdout.String())
	assert.Equal(t, strings.Join(res.Stderr, "\n")+"\n", stderr.String())
}

func TestRunPassesEnv(t *testing.T) {
	t.Parallel()
	cmd := helperCommand("env", "NEXTEST_EXPERIMENTAL_LIBTEST_JSON=1")

	res, err := Run(context.Background(), cmd, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, []string{"1"}, res.Stdout)
}

func TestRunUsesDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	res, err := Run(context.Background(), helperCommand("cwd"), Options{Dir: dir})
	require.NoError(t, err)
	require.Len(t, res.Stdout, 1)

	want, err := os.Stat(dir)
	require.NoError(t, err)
	got, err := os.Stat(res.Stdout[0])
	require.NoError(t, err)
	assert.True(t, os.SameFile(want, got))
}

func TestRunMissingBinary(t *testing.T) {
	t.Parallel()
	_, err := Run(context.Background(), Command{Path: "definitely-not-a-cargo-binary"}, Options{})
	require.Error(t, err)
	assert.Equal(t, errors.ExitEnvironmentError, errors.GetExitCode(err))
}

func TestCaptureLongLine(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", 1<<20)
	lines, err := Capture(strings.NewReader(long+"\nshort"), nil)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 1<<20)
	assert.Equal(t, "short", lines[1])
}
