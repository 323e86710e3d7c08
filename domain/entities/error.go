package entities

import "fmt"

// ErrorType categorizes a failure in the result's "error" object.
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation"
	ErrorTypeExecutableNotFound ErrorType = "executable_not_found"
	ErrorTypeInputNotFound      ErrorType = "input_not_found"
	ErrorTypeExec               ErrorType = "exec"
	ErrorTypeInternal           ErrorType = "internal"
)

// ErrorDetail is the structured form of an invocation error, attached to
// failure results under the "error" key.
type ErrorDetail struct {
	// Wrapped is the cause, e.g. why a process could not be started.
	Wrapped *ErrorDetail `json:"wrapped,omitempty"`

	Details map[string]any `json:"details,omitempty"`

	Message string    `json:"message"`
	Type    ErrorType `json:"type"`

	// Code narrows Type: the offending field, the missing binary or exit_<n>.
	Code string `json:"code,omitempty"`

	IsNotFound bool `json:"is_not_found,omitempty"`
}

// Error renders the detail as "<type>: <message> [<code>]: <cause>".
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != ErrorTypeInternal {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// NewErrorDetail creates an ErrorDetail of the given type.
func NewErrorDetail(errorType ErrorType, message string) *ErrorDetail {
	return &ErrorDetail{
		Type:    errorType,
		Message: message,
	}
}

// WithDetails attaches details and returns e.
func (e *ErrorDetail) WithDetails(details map[string]any) *ErrorDetail {
	e.Details = details
	return e
}

// WithCode sets the code and returns e.
func (e *ErrorDetail) WithCode(code string) *ErrorDetail {
	e.Code = code
	return e
}

// WithCause wraps err as an internal detail and returns e.
func (e *ErrorDetail) WithCause(err error) *ErrorDetail {
	if err != nil {
		e.Wrapped = NewErrorDetail(ErrorTypeInternal, err.Error())
	}
	return e
}

// NotFound marks e as a missing-resource error and returns e.
func (e *ErrorDetail) NotFound() *ErrorDetail {
	e.IsNotFound = true
	return e
}
