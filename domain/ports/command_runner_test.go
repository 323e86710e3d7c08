package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCommandRunner is a function-backed CommandRunner for testing.
type MockCommandRunner struct {
	RunFunc func(ctx context.Context, req CommandRequest) (*CommandResult, error)
}

func (m *MockCommandRunner) Run(ctx context.Context, req CommandRequest) (*CommandResult, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, req)
	}
	return &CommandResult{Stdout: "{}\n"}, nil
}

var _ CommandRunner = (*MockCommandRunner)(nil)

func TestMockCommandRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("default behavior", func(t *testing.T) {
		runner := &MockCommandRunner{}
		res, err := runner.Run(ctx, CommandRequest{Command: "butane"})

		require.NoError(t, err)
		assert.Equal(t, "{}\n", res.Stdout)
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("echoes stdin", func(t *testing.T) {
		runner := &MockCommandRunner{
			RunFunc: func(ctx context.Context, req CommandRequest) (*CommandResult, error) {
				return &CommandResult{Stdout: req.Stdin}, nil
			},
		}

		res, err := runner.Run(ctx, CommandRequest{Command: "butane", Stdin: "variant: fcos\n"})
		require.NoError(t, err)
		assert.Equal(t, "variant: fcos\n", res.Stdout)
	})

	t.Run("start failure", func(t *testing.T) {
		runner := &MockCommandRunner{
			RunFunc: func(ctx context.Context, req CommandRequest) (*CommandResult, error) {
				return nil, errors.New("exec format error")
			},
		}

		res, err := runner.Run(ctx, CommandRequest{Command: "butane"})
		require.Error(t, err)
		assert.Nil(t, res)
	})
}
