package entities

// DefaultBin is the transpiler executable looked up when no bin is given.
const DefaultBin = "butane"

// InvocationRequest holds the options of a single transpiler run.
// Exactly one of InputPath and Input must be set; an empty string counts as unset.
type InvocationRequest struct {
	// InputPath is the path of the Butane document, passed as a bare argument.
	InputPath string `json:"input_path,omitempty" validate:"required_without=Input,excluded_with=Input" jsonschema:"oneof_required=input_path,description=Path to the Butane input file."`

	// Input is raw Butane content, passed on standard input.
	Input string `json:"input,omitempty" validate:"required_without=InputPath,excluded_with=InputPath" jsonschema:"oneof_required=input,description=Raw Butane configuration content to pass via stdin."`

	// Bin is the path of the Butane binary or its name on PATH.
	Bin string `json:"bin,omitempty" validate:"required" jsonschema:"default=butane,description=Path to the Butane binary or binary name if in PATH."`

	// FilesDir is the directory containing files to embed.
	FilesDir string `json:"files_dir,omitempty" jsonschema:"description=Directory containing files to embed."`

	// Output is the file the transpiler writes the Ignition config to.
	Output string `json:"output,omitempty" jsonschema:"description=Output file path to write the result."`

	Check  bool `json:"check,omitempty" jsonschema:"default=false,description=Validate config without generating output."`
	Pretty bool `json:"pretty,omitempty" jsonschema:"default=true,description=Output formatted JSON."`
	Raw    bool `json:"raw,omitempty" jsonschema:"default=false,description=Output raw Ignition without MachineConfig wrapping."`
	Strict bool `json:"strict,omitempty" jsonschema:"default=true,description=Fail on warnings."`
}

// DefaultInvocationRequest returns a request carrying the documented defaults
// and no input.
func DefaultInvocationRequest() InvocationRequest {
	return InvocationRequest{
		Bin:    DefaultBin,
		Pretty: true,
		Strict: true,
	}
}

// UsesStdin reports whether the document is delivered on standard input.
func (r InvocationRequest) UsesStdin() bool {
	return r.Input != ""
}

// WritesOutputFile reports whether the transpiler writes its result to a file.
func (r InvocationRequest) WritesOutputFile() bool {
	return r.Output != ""
}
