package cli

import "github.com/relogkit/relog/internal/errors"

// Exit codes for the relog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitRuntimeError indicates a failure during execution
	ExitRuntimeError = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitRepositoryError indicates an unusable repository state
	ExitRepositoryError = 3

	// ExitConfigError indicates invalid configuration
	ExitConfigError = 4
)

// exitCodeFor maps an error category onto a process exit code.
func exitCodeFor(category errors.ErrorCategory) int {
	switch category {
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Repository:
		return ExitRepositoryError
	case errors.Configuration:
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}
