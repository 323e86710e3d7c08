package entities

// MessageExecuted is the message of every successful invocation.
const MessageExecuted = "Butane command executed"

// Result is the outcome of one invocation as reported to the orchestration engine.
// A successful result carries exactly one of OutputFilePath and CommandOutput.
type Result struct {
	// OutputFilePath echoes the requested output file.
	OutputFilePath *string `json:"output_file_path,omitempty"`

	// CommandOutput is the transpiler's standard output, verbatim.
	CommandOutput *string `json:"command_output,omitempty"`

	// Stderr is the transpiler's standard error when the process failed.
	Stderr *string `json:"stderr,omitempty"`

	// Error contains structured error information if Failed is set.
	Error *ErrorDetail `json:"error,omitempty"`

	// Message provides a human-readable description of the result.
	Message string `json:"msg"`

	// Changed is always false: the plugin does not track remote state.
	Changed bool `json:"changed"`

	// Failed signals failure to the orchestration engine.
	Failed bool `json:"failed,omitempty"`
}

// ResultOutputFile creates a successful Result for a run that wrote to path.
func ResultOutputFile(path string) Result {
	return Result{
		Message:        MessageExecuted,
		OutputFilePath: &path,
	}
}

// ResultCommandOutput creates a successful Result carrying captured stdout.
func ResultCommandOutput(stdout string) Result {
	return Result{
		Message:       MessageExecuted,
		CommandOutput: &stdout,
	}
}

// ResultFailure creates a failed Result from error details.
func ResultFailure(err *ErrorDetail) Result {
	return Result{
		Message: err.Message,
		Failed:  true,
		Error:   err,
	}
}

// WithStderr returns a copy of the Result with the captured stderr attached.
func (r Result) WithStderr(stderr string) Result {
	r.Stderr = &stderr
	return r
}

// IsSuccess returns true if the result indicates success.
func (r Result) IsSuccess() bool {
	return !r.Failed
}

// IsFailure returns true if the result indicates failure.
func (r Result) IsFailure() bool {
	return r.Failed
}
