package ports

// ArgsParser decodes the arguments document handed over by the orchestration engine.
type ArgsParser interface {
	// Parse unmarshals YAML or JSON bytes into a parameter map.
	Parse(data []byte) (map[string]any, error)
}
