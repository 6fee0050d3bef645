package cli

import (
	"github.com/ariel-frischer/recnotify/internal/cli/shared"
)

// Exit codes for the recnotify CLI (re-exported from shared)
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates a failed or invalid parameter set
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates required dependencies are missing
	ExitMissingDependencies = shared.ExitMissingDependency
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
