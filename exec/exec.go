// Package exec selects how a transpiler command is run: natively through
// os/exec, or inside wazero when the command is a WASI module.
package exec

import (
	"context"

	"github.com/reglet-dev/butane-plugin/domain/ports"
	"github.com/reglet-dev/butane-plugin/infrastructure/process"
	"github.com/reglet-dev/butane-plugin/infrastructure/wazero"
)

// runConfig holds the configuration for command execution.
// This struct is unexported to enforce the functional options pattern.
type runConfig struct {
	native  ports.CommandRunner
	wasm    ports.CommandRunner
	workdir string // Working directory for native commands (default: inherit)
}

// defaultRunConfig returns the default runners. No timeout is applied.
func defaultRunConfig() runConfig {
	return runConfig{
		native: process.NewRunner(),
		wasm:   wazero.NewRunner(),
	}
}

// RunOption is a functional option for configuring command execution.
// Use With* functions to create options.
type RunOption func(*runConfig)

// WithNativeRunner sets the runner used for ordinary executables.
// This is useful for injecting mocks during testing.
func WithNativeRunner(r ports.CommandRunner) RunOption {
	return func(c *runConfig) {
		if r != nil {
			c.native = r
		}
	}
}

// WithWasmRunner sets the runner used for .wasm modules.
func WithWasmRunner(r ports.CommandRunner) RunOption {
	return func(c *runConfig) {
		if r != nil {
			c.wasm = r
		}
	}
}

// WithWorkdir sets the working directory for the command.
// If not specified, the current working directory is used.
func WithWorkdir(dir string) RunOption {
	return func(c *runConfig) {
		c.workdir = dir
	}
}

// applyRunOptions applies functional options and returns the configuration.
func applyRunOptions(opts ...RunOption) runConfig {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Runner dispatches each command to the native or the WASI runner.
type Runner struct {
	cfg runConfig
}

// NewRunner creates a dispatching Runner.
//
// Example:
//
//	runner := exec.NewRunner(exec.WithWorkdir("/srv/ignition"))
//	resp, err := runner.Run(ctx, ports.CommandRequest{
//	    Command: "/usr/bin/butane",
//	    Args:    []string{"--pretty", "--strict", "config.bu"},
//	})
func NewRunner(opts ...RunOption) *Runner {
	return &Runner{cfg: applyRunOptions(opts...)}
}

var _ ports.CommandRunner = (*Runner)(nil)

// Run executes req with the runner matching its command.
func (r *Runner) Run(ctx context.Context, req ports.CommandRequest) (*ports.CommandResult, error) {
	// Override the request's directory from options if not already set
	if req.Dir == "" && r.cfg.workdir != "" {
		req.Dir = r.cfg.workdir
	}

	if wazero.IsWasmModule(req.Command) {
		return r.cfg.wasm.Run(ctx, req)
	}
	return r.cfg.native.Run(ctx, req)
}
