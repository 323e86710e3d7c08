//go:build !wasip1

package exec

import (
	"context"
	"testing"

	"github.com/reglet-dev/butane-plugin/domain/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, req ports.CommandRequest) (*ports.CommandResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.CommandResult), args.Error(1)
}

// --- RunOption Functional Options Tests ---

func TestRunOption_DefaultConfig(t *testing.T) {
	cfg := defaultRunConfig()

	assert.NotNil(t, cfg.native)
	assert.NotNil(t, cfg.wasm)
	assert.Empty(t, cfg.workdir, "default workdir should be empty (inherit)")
}

func TestApplyRunOptions_OptionsApplyInOrder(t *testing.T) {
	cfg := applyRunOptions(
		WithWorkdir("/first"),
		WithWorkdir("/second"),
	)

	assert.Equal(t, "/second", cfg.workdir, "last option should win")
}

func TestApplyRunOptions_NilRunnerIgnored(t *testing.T) {
	cfg := applyRunOptions(WithNativeRunner(nil), WithWasmRunner(nil))

	assert.NotNil(t, cfg.native)
	assert.NotNil(t, cfg.wasm)
}

// --- Dispatch Tests ---

func TestRunner_DispatchesNative(t *testing.T) {
	native := new(mockRunner)
	wasm := new(mockRunner)
	req := ports.CommandRequest{Command: "/usr/bin/butane", Args: []string{"--pretty"}}
	native.On("Run", mock.Anything, req).Return(&ports.CommandResult{Stdout: "{}"}, nil)

	res, err := NewRunner(WithNativeRunner(native), WithWasmRunner(wasm)).Run(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "{}", res.Stdout)
	native.AssertExpectations(t)
	wasm.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestRunner_DispatchesWasm(t *testing.T) {
	native := new(mockRunner)
	wasm := new(mockRunner)
	req := ports.CommandRequest{Command: "/opt/butane.wasm"}
	wasm.On("Run", mock.Anything, req).Return(&ports.CommandResult{ExitCode: 1, Stderr: "error"}, nil)

	res, err := NewRunner(WithNativeRunner(native), WithWasmRunner(wasm)).Run(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	wasm.AssertExpectations(t)
	native.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestRunner_AppliesWorkdir(t *testing.T) {
	native := new(mockRunner)
	expected := ports.CommandRequest{Command: "butane", Dir: "/srv"}
	native.On("Run", mock.Anything, expected).Return(&ports.CommandResult{}, nil)

	_, err := NewRunner(WithNativeRunner(native), WithWorkdir("/srv")).
		Run(context.Background(), ports.CommandRequest{Command: "butane"})

	require.NoError(t, err)
	native.AssertExpectations(t)
}

func TestRunner_RequestDirWins(t *testing.T) {
	native := new(mockRunner)
	req := ports.CommandRequest{Command: "butane", Dir: "/own"}
	native.On("Run", mock.Anything, req).Return(&ports.CommandResult{}, nil)

	_, err := NewRunner(WithNativeRunner(native), WithWorkdir("/srv")).Run(context.Background(), req)

	require.NoError(t, err)
	native.AssertExpectations(t)
}
