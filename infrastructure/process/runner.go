// Package process provides the native process adapters: an os/exec command
// runner and an executable resolver.
package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/reglet-dev/butane-plugin/domain/ports"
)

// Runner implements ports.CommandRunner with os/exec.
// It imposes no timeout; cancellation only comes from the caller's context.
type Runner struct{}

// NewRunner creates a new native Runner.
func NewRunner() *Runner {
	return &Runner{}
}

var _ ports.CommandRunner = (*Runner)(nil)

// Run executes req and waits for it to exit.
// Stdout and stderr are buffered in full before Run returns.
func (r *Runner) Run(ctx context.Context, req ports.CommandRequest) (*ports.CommandResult, error) {
	if req.Command == "" {
		return nil, errors.New("command is required")
	}

	//nolint:gosec // G204: running the configured transpiler is the purpose of this function
	cmd := exec.CommandContext(ctx, req.Command, req.Args...)
	if req.Dir != "" {
		cmd.Dir = req.Dir
	}
	if req.Stdin != "" {
		cmd.Stdin = strings.NewReader(req.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	res := &ports.CommandResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMs: duration.Milliseconds(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, err
	}

	return res, nil
}
