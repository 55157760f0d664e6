package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exarch/internal/configloader"
)

// Exit codes for exarch.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the command ran but did not fully succeed, for
	// example a build with failed files.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file or network I/O errors.
	ExitIOError = 74
)

// ErrBuildFailed is returned when some files could not be converted. The
// failures have already been reported.
var ErrBuildFailed = errors.New("build failed")

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withExitCode(ExitInvalidUsage, validate(cmd, args))
	}
}

// withExitCode wraps err so that ExitCode reports code for it.
func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	var validationErr *configloader.ValidationError
	if errors.As(err, &validationErr) {
		return ExitConfigError
	}

	return ExitFailure
}

// IsReported reports whether err has already been shown to the user and
// should not be logged again.
func IsReported(err error) bool {
	return errors.Is(err, ErrBuildFailed)
}
