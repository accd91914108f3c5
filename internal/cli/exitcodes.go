package cli

import (
	"errors"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// Exit codes for gojslint.
const (
	// ExitSuccess indicates no errors and no more warnings than allowed.
	ExitSuccess = 0

	// ExitLintIssues indicates error findings, or more warnings than
	// --max-warnings allows.
	ExitLintIssues = 1

	// ExitUsageError indicates bad flags or an invalid configuration.
	ExitUsageError = 2

	// ExitInternalError indicates files that could not be processed or an
	// unexpected failure.
	ExitInternalError = 3
)

var (
	// ErrLintIssuesFound is returned when the run should exit with ExitLintIssues.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrUsage marks flag and configuration errors.
	ErrUsage = errors.New("invalid usage")

	// ErrFilesFailed is returned when at least one file could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// ExitCodeFromResult determines the exit code of a lint run. A negative
// maxWarnings allows any number of warnings.
func ExitCodeFromResult(result *runner.Result, maxWarnings int) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.FilesErrored > 0 {
		return ExitInternalError
	}

	if result.HasFailures() {
		return ExitLintIssues
	}

	if maxWarnings >= 0 && result.Stats.Findings.Warnings > maxWarnings {
		return ExitLintIssues
	}

	return ExitSuccess
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintIssues
	case errors.Is(err, ErrUsage), errors.As(err, &validationErr):
		return ExitUsageError
	default:
		return ExitInternalError
	}
}
