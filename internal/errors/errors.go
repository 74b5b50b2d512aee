// Package errors provides structured error types and exit codes for the reporter.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes.
const (
	ExitSuccess          = 0 // Success, or all tests passed
	ExitRuntimeError     = 1 // Runtime error or failed verdict
	ExitConfigError      = 2 // Invalid flags, config, or project root
	ExitEnvironmentError = 3 // cargo missing, unwritable data dir, etc.
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindEnvironment
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindEnvironment:
		return "environment"
	case KindStorage:
		return "storage"
	default:
		return "runtime"
	}
}

// ReporterError is the base error type of the reporter.
type ReporterError struct {
	Kind    ErrorKind
	Message string
	Op      string // Operation name if applicable, e.g. "save"
	Cause   error  // Underlying error
}

func (e *ReporterError) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ReporterError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *ReporterError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment, KindStorage:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *ReporterError {
	return &ReporterError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...any) *ReporterError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *ReporterError {
	return &ReporterError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...any) *ReporterError {
	return Config(fmt.Sprintf(format, args...))
}

// Validation creates a new validation error wrapping cause.
func Validation(message string, cause error) *ReporterError {
	return &ReporterError{
		Kind:    KindValidation,
		Message: message,
		Cause:   cause,
	}
}

// Environment creates a new environment error.
func Environment(message string) *ReporterError {
	return &ReporterError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...any) *ReporterError {
	return Environment(fmt.Sprintf(format, args...))
}

// Storage creates a storage error for op wrapping cause.
func Storage(op string, cause error) *ReporterError {
	return &ReporterError{
		Kind:    KindStorage,
		Op:      op,
		Message: "report storage failed",
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *ReporterError {
	return &ReporterError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var re *ReporterError
	if stderrors.As(err, &re) {
		return re.ExitCode()
	}
	return ExitRuntimeError
}
