package ports

// ExecutableResolver turns a binary name or path into the path to execute.
type ExecutableResolver interface {
	// Resolve returns bin verbatim when it names an existing regular file,
	// otherwise the first match on the executable search path.
	Resolve(bin string) (string, error)
}
