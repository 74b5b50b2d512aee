// Package tddguard provides public constants for tools that wrap the
// tdd-guard-rust reporter.
package tddguard

// Exit codes returned by the tdd-guard-rust CLI.
const (
	// ExitSuccess indicates all tests passed, or passthrough finished.
	ExitSuccess = 0

	// ExitFailure indicates a failed verdict or a runtime failure.
	ExitFailure = 1

	// ExitConfigError indicates invalid flags, config, or project root.
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (cargo missing, unwritable data dir, etc.).
	ExitEnvError = 3
)
