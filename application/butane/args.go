package butane

import (
	"github.com/reglet-dev/butane-plugin/domain/entities"
	pluginerrors "github.com/reglet-dev/butane-plugin/domain/errors"
)

// Transpiler flags.
const (
	FlagCheck    = "--check"
	FlagFilesDir = "--files-dir"
	FlagPretty   = "--pretty"
	FlagRaw      = "--raw"
	FlagStrict   = "--strict"
	FlagOutput   = "--output"
)

// BuildArgs assembles the argument vector for req, starting with bin.
// The order is fixed: flags, the positional input path, then --output.
// isFile reports whether a path is an existing regular file; an input_path
// failing it yields an *errors.InputNotFoundError.
func BuildArgs(req entities.InvocationRequest, bin string, isFile func(string) bool) ([]string, error) {
	argv := []string{bin}

	if req.Check {
		argv = append(argv, FlagCheck)
	}
	if req.FilesDir != "" {
		argv = append(argv, FlagFilesDir, req.FilesDir)
	}
	if req.Pretty {
		argv = append(argv, FlagPretty)
	}
	if req.Raw {
		argv = append(argv, FlagRaw)
	}
	if req.Strict {
		argv = append(argv, FlagStrict)
	}

	if req.InputPath != "" {
		if !isFile(req.InputPath) {
			return nil, &pluginerrors.InputNotFoundError{Path: req.InputPath}
		}
		argv = append(argv, req.InputPath)
	}

	if req.Output != "" {
		argv = append(argv, FlagOutput, req.Output)
	}

	return argv, nil
}
