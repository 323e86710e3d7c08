package wazero

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reglet-dev/butane-plugin/domain/ports"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// Runner implements ports.CommandRunner for WASI command modules.
type Runner struct {
	cfg runnerConfig
}

type runnerConfig struct {
	rootMount string
	readFile  func(string) ([]byte, error)
}

// RunnerOption configures the Runner.
type RunnerOption func(*runnerConfig)

// WithRootMount sets the host directory mounted at the guest's "/" (default: "/").
func WithRootMount(dir string) RunnerOption {
	return func(c *runnerConfig) {
		if dir != "" {
			c.rootMount = dir
		}
	}
}

func defaultRunnerConfig() runnerConfig {
	return runnerConfig{
		rootMount: "/",
		readFile:  os.ReadFile,
	}
}

// NewRunner creates a new WASI Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	cfg := defaultRunnerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runner{cfg: cfg}
}

var _ ports.CommandRunner = (*Runner)(nil)

// Run compiles req.Command as a WASI module and runs its _start function.
// Each call uses a fresh runtime that is closed before returning.
func (r *Runner) Run(ctx context.Context, req ports.CommandRequest) (*ports.CommandResult, error) {
	if req.Command == "" {
		return nil, errors.New("command is required")
	}

	code, err := r.cfg.readFile(req.Command)
	if err != nil {
		return nil, fmt.Errorf("failed to read wasm module: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	compiled, err := rt.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to compile wasm module: %w", err)
	}

	var stdout, stderr bytes.Buffer
	modCfg := wazero.NewModuleConfig().
		WithName(filepath.Base(req.Command)).
		WithArgs(append([]string{filepath.Base(req.Command)}, req.Args...)...).
		WithStdout(&stdout).
		WithStderr(&stderr).
		WithFSConfig(wazero.NewFSConfig().WithDirMount(r.cfg.rootMount, "/")).
		WithSysWalltime().
		WithSysNanotime().
		WithRandSource(rand.Reader)
	if req.Stdin != "" {
		modCfg = modCfg.WithStdin(strings.NewReader(req.Stdin))
	}

	start := time.Now()
	mod, err := rt.InstantiateModule(ctx, compiled, modCfg)
	duration := time.Since(start)
	if mod != nil {
		_ = mod.Close(ctx)
	}

	res := &ports.CommandResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMs: duration.Milliseconds(),
	}

	if err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = int(exitErr.ExitCode())
			return res, nil
		}
		return nil, fmt.Errorf("failed to run wasm module: %w", err)
	}

	return res, nil
}

// IsWasmModule reports whether command names a WASI module by extension.
func IsWasmModule(command string) bool {
	return strings.EqualFold(filepath.Ext(command), ".wasm")
}
