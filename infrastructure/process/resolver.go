package process

import (
	"os"
	"os/exec"

	pluginerrors "github.com/reglet-dev/butane-plugin/domain/errors"
	"github.com/reglet-dev/butane-plugin/domain/ports"
)

// Resolver implements ports.ExecutableResolver against the local filesystem and PATH.
type Resolver struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// NewResolver creates a Resolver searching the process's PATH.
func NewResolver() *Resolver {
	return &Resolver{
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}
}

var _ ports.ExecutableResolver = (*Resolver)(nil)

// Resolve returns bin unchanged when it is an existing regular file,
// otherwise the result of a PATH search.
func (r *Resolver) Resolve(bin string) (string, error) {
	if IsRegularFile(bin) {
		return bin, nil
	}
	path, err := r.lookPath(bin)
	if err != nil {
		return "", &pluginerrors.ExecutableNotFoundError{
			Err:   err,
			Bin:   bin,
			Paths: r.getenv("PATH"),
		}
	}
	return path, nil
}

// IsRegularFile reports whether path exists and is a regular file.
// Symlinks are followed.
func IsRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
