package runner

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tddguard/cargo-reporter/internal/errors"
)

// maxLineSize bounds a single output line; libtest JSON events carry whole
// captured test output on one line.
const maxLineSize = 64 * 1024 * 1024

// Result holds the captured output of a finished child process.
type Result struct {
	Stdout   []string
	Stderr   []string
	ExitCode int
}

// Options configures Run.
type Options struct {
	// Dir is the working directory of the child.
	Dir string
	// Stdout and Stderr receive each captured line as it arrives. Nil
	// writers disable echoing.
	Stdout io.Writer
	Stderr io.Writer
}

// Run spawns cmd and drains its stdout and stderr concurrently, echoing
// each line. A non-zero exit status is reported in Result.ExitCode, not as
// an error. Failing to start the child is an environment error.
func Run(ctx context.Context, cmd Command, opts Options) (*Result, error) {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = opts.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stdin = os.Stdin

	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture stdout")
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture stderr")
	}

	if err := c.Start(); err != nil {
		return nil, &errors.ReporterError{
			Kind:    errors.KindEnvironment,
			Message: fmt.Sprintf("failed to start %s", cmd.Path),
			Cause:   err,
		}
	}

	res := &Result{}
	var group errgroup.Group
	group.Go(func() error {
		lines, err := Capture(stdout, opts.Stdout)
		res.Stdout = lines
		return err
	})
	group.Go(func() error {
		lines, err := Capture(stderr, opts.Stderr)
		res.Stderr = lines
		return err
	})
	captureErr := group.Wait()

	waitErr := c.Wait()
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case stderrors.As(waitErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode < 0 {
			// Killed by a signal.
			res.ExitCode = errors.ExitRuntimeError
		}
	default:
		return res, errors.Wrap(waitErr, "test runner failed")
	}

	if captureErr != nil {
		return res, errors.Wrap(captureErr, "failed to read test output")
	}
	return res, nil
}

// echoMu serializes echoed lines so stdout and stderr lines never interleave
// mid-line when both point at the same terminal.
var echoMu sync.Mutex

// Capture reads r line by line, writing each line to echo (if non-nil) as
// soon as it is read, and returns every line without its terminator.
func Capture(r io.Reader, echo io.Writer) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		lines = append(lines, line)
		if echo != nil {
			echoMu.Lock()
			_, err := fmt.Fprintln(echo, line)
			echoMu.Unlock()
			if err != nil {
				return lines, err
			}
		}
	}
	return lines, scanner.Err()
}
