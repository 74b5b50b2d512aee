// Package runner builds, spawns and captures cargo test runs, and reads
// piped test output in passthrough mode.
package runner

import (
	"context"
	"os/exec"
	"strings"
)

// Runner names accepted by Detect.
const (
	NameAuto    = "auto"
	NameCargo   = "cargo"
	NameNextest = "nextest"
)

// Command is a fully built child process invocation.
type Command struct {
	Path string
	Args []string
	// Env holds extra KEY=VALUE pairs added to the parent environment.
	Env []string
}

// String renders the command line for logging.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Runner builds the command line of one test runner.
type Runner interface {
	Name() string
	Command(args []string) Command
}

// CargoRunner runs libtest through cargo test with JSON output enabled.
type CargoRunner struct{}

// Name returns "cargo".
func (CargoRunner) Name() string { return NameCargo }

// Command returns `cargo test --no-fail-fast <args> -- -Z unstable-options --format json --show-output`.
// The JSON format requires a nightly toolchain; on stable libtest prints
// plain output instead.
func (CargoRunner) Command(args []string) Command {
	argv := []string{"test", "--no-fail-fast"}
	argv = append(argv, args...)
	argv = append(argv, "--", "-Z", "unstable-options", "--format", "json", "--show-output")
	return Command{Path: "cargo", Args: argv}
}

// NextestRunner runs cargo-nextest with libtest-compatible JSON output.
type NextestRunner struct{}

// Name returns "nextest".
func (NextestRunner) Name() string { return NameNextest }

// Command returns `cargo nextest run --message-format libtest-json --no-fail-fast <args>`.
func (NextestRunner) Command(args []string) Command {
	argv := []string{"nextest", "run", "--message-format", "libtest-json", "--no-fail-fast"}
	argv = append(argv, args...)
	return Command{
		Path: "cargo",
		Args: argv,
		Env:  []string{"NEXTEST_EXPERIMENTAL_LIBTEST_JSON=1"},
	}
}

// ProbeFunc reports whether cargo-nextest is installed.
type ProbeFunc func(ctx context.Context) bool

// ProbeNextest runs `cargo nextest --version`.
func ProbeNextest(ctx context.Context) bool {
	return exec.CommandContext(ctx, "cargo", "nextest", "--version").Run() == nil
}

// Registry maps runner names and aliases to runners.
type Registry struct {
	runners map[string]Runner
	probe   ProbeFunc
}

// NewRegistry creates a registry with the built-in runners. A nil probe
// uses ProbeNextest.
func NewRegistry(probe ProbeFunc) *Registry {
	if probe == nil {
		probe = ProbeNextest
	}
	r := &Registry{
		runners: make(map[string]Runner),
		probe:   probe,
	}

	cargo := CargoRunner{}
	r.runners[NameCargo] = cargo
	r.runners["cargo-test"] = cargo
	r.runners["test"] = cargo
	r.runners[NameNextest] = NextestRunner{}

	return r
}

// Get returns the runner registered under name, or nil.
func (r *Registry) Get(name string) Runner {
	return r.runners[strings.ToLower(name)]
}

// Register adds a runner under name.
func (r *Registry) Register(name string, runner Runner) {
	r.runners[strings.ToLower(name)] = runner
}

// Detect resolves a preference to a runner. Known names are returned as is;
// "auto" probes for nextest and falls back to cargo, as does any unknown name.
func (r *Registry) Detect(ctx context.Context, preference string) Runner {
	preference = strings.ToLower(strings.TrimSpace(preference))
	if preference != NameAuto {
		if runner := r.Get(preference); runner != nil {
			return runner
		}
		return r.runners[NameCargo]
	}
	if r.probe(ctx) {
		return r.runners[NameNextest]
	}
	return r.runners[NameCargo]
}
