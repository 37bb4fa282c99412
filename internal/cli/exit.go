package cli

import (
	"errors"
	"fmt"

	"vmtest/internal/domain"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // All tests passed
	ExitFailure      = 1 // At least one test failed
	ExitCommandError = 2 // Command error (discovery failed, bad flags, unreadable context)
)

// ExitError carries the process exit code for an error. An empty Message
// means the failure was already reported and nothing more should be printed.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Nil maps to
// ExitSuccess and errors without a code to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ExitCodeFor maps a run summary to the process exit code
func ExitCodeFor(summary domain.Summary) int {
	if summary.Success() {
		return ExitSuccess
	}
	return ExitFailure
}

// Silent reports whether err should not be printed by the entry point
func Silent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Message == "" && exitErr.Err == nil
}
