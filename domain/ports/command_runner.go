package ports

import (
	"context"
)

// CommandRunner defines the interface for command execution.
// Infrastructure adapters implement this to provide exec functionality.
type CommandRunner interface {
	// Run executes a command, waits for it and returns the captured result.
	// A non-zero exit status is reported in the result, not as an error.
	// An error means the command could not be run at all.
	Run(ctx context.Context, req CommandRequest) (*CommandResult, error)
}

// CommandRequest holds parameters for command execution.
type CommandRequest struct {
	Command string
	Args    []string
	// Stdin is written to the command's standard input. Empty means no data.
	Stdin string
	// Dir is the working directory of a native command. Empty inherits.
	Dir string
}

// CommandResult represents the result of a command execution.
type CommandResult struct {
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMs int64
}
