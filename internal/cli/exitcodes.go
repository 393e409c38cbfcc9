package cli

import (
	"errors"

	"github.com/yaklabco/gomdtable/pkg/runner"
)

// Exit codes for gomdtable.
const (
	// ExitSuccess indicates every file was processed.
	ExitSuccess = 0

	// ExitFileErrors indicates the run completed but some files failed, or
	// fmt --check found unformatted tables.
	ExitFileErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesFailed is returned when one or more files could not be processed.
// The per-file errors have already been reported.
var ErrFilesFailed = errors.New("some files could not be processed")

// ExitError attaches a process exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode wraps err with code. A nil err stays nil.
func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode returns the process exit code for an error returned by the root
// command. Errors without an explicit code come from flag and argument
// parsing and count as usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrUnformatted) {
		return ExitFileErrors
	}

	return ExitInvalidUsage
}

// ExitCodeFromResult determines the exit code based on a run result.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasErrors() {
		return ExitSuccess
	}
	return ExitFileErrors
}
