package entities

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultOutputFile(t *testing.T) {
	result := ResultOutputFile("./example.ign")

	assert.Equal(t, MessageExecuted, result.Message)
	require.NotNil(t, result.OutputFilePath)
	assert.Equal(t, "./example.ign", *result.OutputFilePath)
	assert.Nil(t, result.CommandOutput)
	assert.False(t, result.Changed)
	assert.True(t, result.IsSuccess())
}

func TestResultCommandOutput(t *testing.T) {
	result := ResultCommandOutput("")

	require.NotNil(t, result.CommandOutput)
	assert.Empty(t, *result.CommandOutput)
	assert.Nil(t, result.OutputFilePath)
	assert.False(t, result.IsFailure())
}

func TestResultFailure(t *testing.T) {
	detail := NewErrorDetail("exec", "Butane command failed").WithCode("exit_1")
	result := ResultFailure(detail).WithStderr("Error: bad")

	assert.True(t, result.IsFailure())
	assert.False(t, result.IsSuccess())
	assert.Equal(t, "Butane command failed", result.Message)
	assert.Equal(t, detail, result.Error)
	require.NotNil(t, result.Stderr)
	assert.Equal(t, "Error: bad", *result.Stderr)
}

func TestResult_JSON(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "output file",
			result: ResultOutputFile("./example.ign"),
			want:   `{"output_file_path":"./example.ign","msg":"Butane command executed","changed":false}`,
		},
		{
			name:   "empty stdout is kept",
			result: ResultCommandOutput(""),
			want:   `{"command_output":"","msg":"Butane command executed","changed":false}`,
		},
		{
			name:   "failure",
			result: ResultFailure(NewErrorDetail("input_not_found", "Input: 'a.bu' file not found.")),
			want:   `{"error":{"message":"Input: 'a.bu' file not found.","type":"input_not_found"},"msg":"Input: 'a.bu' file not found.","changed":false,"failed":true}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.result)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}

func TestErrorDetail_Error(t *testing.T) {
	detail := NewErrorDetail(ErrorTypeExec, "Butane command failed").
		WithCode("exit_2").
		WithCause(errors.New("no such file"))

	assert.Equal(t, "exec: Butane command failed [exit_2]: no such file", detail.Error())
	assert.Equal(t, ErrorTypeInternal, detail.Wrapped.Type)
	assert.Nil(t, NewErrorDetail(ErrorTypeExec, "x").WithCause(nil).Wrapped)

	notFound := NewErrorDetail(ErrorTypeInputNotFound, "missing").
		WithDetails(map[string]any{"path": "a.bu"}).
		NotFound()
	assert.True(t, notFound.IsNotFound)
	assert.Equal(t, "a.bu", notFound.Details["path"])

	var nilDetail *ErrorDetail
	assert.Empty(t, nilDetail.Error())
}
