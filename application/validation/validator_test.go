//go:build !wasip1

package validation_test

import (
	"errors"
	"testing"

	"github.com/reglet-dev/butane-plugin/application/validation"
	"github.com/reglet-dev/butane-plugin/domain/entities"
	pluginerrors "github.com/reglet-dev/butane-plugin/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	withInputs := func(inputPath, input string) entities.InvocationRequest {
		req := entities.DefaultInvocationRequest()
		req.InputPath = inputPath
		req.Input = input
		return req
	}

	tests := []struct {
		name    string
		req     entities.InvocationRequest
		wantErr string
	}{
		{name: "input path only", req: withInputs("./example.bu", "")},
		{name: "inline input only", req: withInputs("", "variant: fcos\n")},
		{
			name:    "both inputs",
			req:     withInputs("./example.bu", "variant: fcos\n"),
			wantErr: "parameters are mutually exclusive: input_path|input",
		},
		{
			name:    "neither input",
			req:     withInputs("", ""),
			wantErr: "one of the following is required: input_path, input",
		},
		{
			name: "empty bin",
			req: func() entities.InvocationRequest {
				r := withInputs("./example.bu", "")
				r.Bin = ""
				return r
			}(),
			wantErr: "invalid value for bin",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.ValidateRequest(tc.req)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)

			var ve *pluginerrors.ValidationError
			assert.True(t, errors.As(err, &ve), "should be a ValidationError")
		})
	}
}

func TestParamsValidator_Validate(t *testing.T) {
	v, err := validation.NewParamsValidator()
	require.NoError(t, err)

	t.Run("valid file input", func(t *testing.T) {
		err := v.Validate(map[string]any{
			"input_path": "./example.bu",
			"output":     "./example.ign",
			"pretty":     false,
		})
		assert.NoError(t, err)
	})

	t.Run("valid inline input", func(t *testing.T) {
		err := v.Validate(map[string]any{
			"input": "variant: fcos\nversion: 1.4.0\n",
			"check": true,
		})
		assert.NoError(t, err)
	})

	t.Run("unknown option", func(t *testing.T) {
		err := v.Validate(map[string]any{
			"input_path": "./example.bu",
			"prety":      true,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prety")

		var ve *pluginerrors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("wrong type", func(t *testing.T) {
		err := v.Validate(map[string]any{
			"input_path": "./example.bu",
			"strict":     "sometimes",
		})
		require.Error(t, err)

		var ve *pluginerrors.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "strict", ve.Field)
	})

	t.Run("both inputs", func(t *testing.T) {
		err := v.Validate(map[string]any{
			"input_path": "./example.bu",
			"input":      "variant: fcos\n",
		})
		assert.Error(t, err)
	})

	t.Run("neither input", func(t *testing.T) {
		err := v.Validate(map[string]any{"check": true})
		assert.Error(t, err)
	})

	t.Run("integer values from YAML", func(t *testing.T) {
		err := v.Validate(map[string]any{
			"input_path": "./example.bu",
			"raw":        1,
		})
		assert.Error(t, err, "raw must be a boolean")
	})
}

func TestNewParamsValidatorFromSchema_Invalid(t *testing.T) {
	_, err := validation.NewParamsValidatorFromSchema([]byte("{not json"))
	assert.Error(t, err)
}
