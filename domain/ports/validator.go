package ports

// ParamsValidator validates a decoded parameter map against the option schema.
type ParamsValidator interface {
	Validate(params map[string]any) error
}
