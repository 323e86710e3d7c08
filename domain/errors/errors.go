// Package errors provides domain-specific error types for the plugin.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/reglet-dev/butane-plugin/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// MessageCommandFailed is reported when the transpiler exits non-zero.
const MessageCommandFailed = "Butane command failed"

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// This function recognizes custom error types and categorizes them appropriately.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	// Generic error - categorize as internal
	return entities.NewErrorDetail(entities.ErrorTypeInternal, err.Error())
}

// ValidationError represents an invalid option set.
type ValidationError struct {
	Err    error
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid parameters: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ValidationError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(entities.ErrorTypeValidation, e.Error()).WithCode(e.Field)
}

// NewMutuallyExclusiveError reports that more than one of fields was given.
func NewMutuallyExclusiveError(fields ...string) *ValidationError {
	return &ValidationError{
		Field:  fields[0],
		Reason: "parameters are mutually exclusive: " + strings.Join(fields, "|"),
	}
}

// NewRequiredOneOfError reports that none of fields was given.
func NewRequiredOneOfError(fields ...string) *ValidationError {
	return &ValidationError{
		Field:  fields[0],
		Reason: "one of the following is required: " + strings.Join(fields, ", "),
	}
}

// ExecutableNotFoundError represents a transpiler binary that is neither a file
// nor found on the search path.
type ExecutableNotFoundError struct {
	Err   error
	Bin   string
	Paths string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("Failed to find required executable %q in paths: %s", e.Bin, e.Paths)
}

func (e *ExecutableNotFoundError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ExecutableNotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(entities.ErrorTypeExecutableNotFound, e.Error()).
		WithCode(e.Bin).
		NotFound()
}

// InputNotFoundError represents an input_path that is not a regular file.
type InputNotFoundError struct {
	Err  error
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("Input: '%s' file not found.", e.Path)
}

func (e *InputNotFoundError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *InputNotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(entities.ErrorTypeInputNotFound, e.Error()).
		WithDetails(map[string]any{"path": e.Path}).
		NotFound()
}

// ProcessExecutionError represents a transpiler run that did not succeed.
// Err is set when the process could not be started at all.
type ProcessExecutionError struct {
	Err      error
	Command  string
	Stderr   string
	ExitCode int
}

func (e *ProcessExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to execute '%s': %v", e.Command, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("command '%s' exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("command '%s' exited with code %d", e.Command, e.ExitCode)
}

func (e *ProcessExecutionError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ProcessExecutionError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(entities.ErrorTypeExec, MessageCommandFailed).
		WithCode(fmt.Sprintf("exit_%d", e.ExitCode)).
		WithDetails(map[string]any{
			"command":   e.Command,
			"exit_code": e.ExitCode,
		}).
		WithCause(e.Err)
}
