// Package butane implements the invocation controller: it validates a request,
// resolves the transpiler, runs it once and maps the outcome to a Result.
package butane

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reglet-dev/butane-plugin/application/validation"
	"github.com/reglet-dev/butane-plugin/domain/entities"
	pluginerrors "github.com/reglet-dev/butane-plugin/domain/errors"
	"github.com/reglet-dev/butane-plugin/domain/ports"
	"github.com/reglet-dev/butane-plugin/exec"
	"github.com/reglet-dev/butane-plugin/infrastructure/process"
	"github.com/reglet-dev/butane-plugin/infrastructure/wazero"
)

// Output is what a successful run produced.
// OutputFilePath is set when the transpiler wrote a file; otherwise
// CommandOutput holds its standard output.
type Output struct {
	OutputFilePath string
	CommandOutput  string
	WroteFile      bool
}

// Controller runs the transpiler for one request at a time.
// It holds no state between calls.
type Controller struct {
	runner   ports.CommandRunner
	resolver ports.ExecutableResolver
	isFile   func(string) bool
	logger   *slog.Logger
	workdir  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithRunner sets the command runner.
// This is useful for injecting mocks during testing.
func WithRunner(r ports.CommandRunner) Option {
	return func(c *Controller) {
		if r != nil {
			c.runner = r
		}
	}
}

// WithResolver sets the executable resolver.
func WithResolver(r ports.ExecutableResolver) Option {
	return func(c *Controller) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkdir sets the directory the transpiler runs in. Relative input_path,
// files_dir and output values are resolved against it.
func WithWorkdir(dir string) Option {
	return func(c *Controller) {
		c.workdir = dir
	}
}

// NewController creates a Controller backed by the dispatching exec runner
// and the PATH resolver.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		resolver: process.NewResolver(),
		isFile:   process.IsRegularFile,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runner == nil {
		c.runner = exec.NewRunner(exec.WithWorkdir(c.workdir))
	}
	return c
}

// Execute performs one invocation and returns a typed error on failure:
// *errors.ValidationError, *errors.ExecutableNotFoundError,
// *errors.InputNotFoundError or *errors.ProcessExecutionError.
// No process is started unless validation, resolution and the input check pass.
func (c *Controller) Execute(ctx context.Context, req entities.InvocationRequest) (Output, error) {
	if err := validation.ValidateRequest(req); err != nil {
		return Output{}, err
	}

	bin, err := c.resolver.Resolve(req.Bin)
	if err != nil {
		return Output{}, err
	}
	c.logger.DebugContext(ctx, "butane: resolved executable", "bin", req.Bin, "path", bin)

	base, err := c.pathBase(bin)
	if err != nil {
		return Output{}, err
	}
	if base != "" && !filepath.IsAbs(bin) {
		if bin, err = filepath.Abs(bin); err != nil {
			return Output{}, err
		}
	}

	argv, err := BuildArgs(anchorPaths(req, base), bin, c.isFile)
	if err != nil {
		var notFound *pluginerrors.InputNotFoundError
		if errors.As(err, &notFound) {
			notFound.Path = req.InputPath
		}
		return Output{}, err
	}
	c.logger.DebugContext(ctx, "butane: running command", "argv", argv, "stdin", req.UsesStdin())

	res, err := c.runner.Run(ctx, ports.CommandRequest{
		Command: argv[0],
		Args:    argv[1:],
		Stdin:   req.Input,
	})
	if err != nil {
		return Output{}, &pluginerrors.ProcessExecutionError{Err: err, Command: bin}
	}
	if res.ExitCode != 0 {
		c.logger.DebugContext(ctx, "butane: command failed", "exit_code", res.ExitCode, "duration_ms", res.DurationMs)
		return Output{}, &pluginerrors.ProcessExecutionError{
			Command:  bin,
			Stderr:   res.Stderr,
			ExitCode: res.ExitCode,
		}
	}
	c.logger.DebugContext(ctx, "butane: command executed", "duration_ms", res.DurationMs)

	if req.WritesOutputFile() {
		return Output{OutputFilePath: req.Output, WroteFile: true}, nil
	}
	return Output{CommandOutput: res.Stdout}, nil
}

// pathBase returns the absolute directory relative paths are anchored to, or
// "" when they can be passed through. WASI guests always run in "/", so their
// paths are anchored to the current directory when no workdir is set.
func (c *Controller) pathBase(bin string) (string, error) {
	var (
		base string
		err  error
	)
	switch {
	case c.workdir != "":
		base, err = filepath.Abs(c.workdir)
	case wazero.IsWasmModule(bin):
		base, err = os.Getwd()
	default:
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return base, nil
}

// anchorPaths makes the relative path options of req absolute under base.
func anchorPaths(req entities.InvocationRequest, base string) entities.InvocationRequest {
	if base == "" {
		return req
	}
	req.InputPath = anchor(base, req.InputPath)
	req.FilesDir = anchor(base, req.FilesDir)
	req.Output = anchor(base, req.Output)
	return req
}

func anchor(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Invoke performs one invocation and always returns a Result; errors are
// reported as failed results.
func (c *Controller) Invoke(ctx context.Context, req entities.InvocationRequest) entities.Result {
	out, err := c.Execute(ctx, req)
	if err != nil {
		return FailureResult(err)
	}
	if out.WroteFile {
		return entities.ResultOutputFile(out.OutputFilePath)
	}
	return entities.ResultCommandOutput(out.CommandOutput)
}

// FailureResult converts an invocation error to a failed Result.
// The transpiler's stderr is attached when the process itself failed.
func FailureResult(err error) entities.Result {
	res := entities.ResultFailure(pluginerrors.ToErrorDetail(err))

	var procErr *pluginerrors.ProcessExecutionError
	if errors.As(err, &procErr) && procErr.Err == nil {
		res = res.WithStderr(procErr.Stderr)
	}
	return res
}
