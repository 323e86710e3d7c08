// Package config turns the engine's option map into a typed InvocationRequest.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/reglet-dev/butane-plugin/application/validation"
	"github.com/reglet-dev/butane-plugin/domain/entities"
	pluginerrors "github.com/reglet-dev/butane-plugin/domain/errors"
	"github.com/reglet-dev/butane-plugin/domain/ports"
)

// Config represents raw plugin options as a key-value map.
type Config = map[string]any

// internalPrefix marks keys the engine adds for its own use.
const internalPrefix = "_ansible_"

var boolOptions = []string{"check", "pretty", "raw", "strict"}

var stringOptions = []string{"input_path", "input", "bin", "files_dir", "output"}

var defaultParamsValidator = sync.OnceValues(func() (ports.ParamsValidator, error) {
	return validation.NewParamsValidator()
})

// Loader builds InvocationRequests from option maps.
type Loader struct {
	params ports.ParamsValidator
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithParamsValidator replaces the schema validator.
func WithParamsValidator(v ports.ParamsValidator) LoaderOption {
	return func(l *Loader) {
		if v != nil {
			l.params = v
		}
	}
}

// NewLoader creates a Loader validating against the generated option schema.
func NewLoader(opts ...LoaderOption) (*Loader, error) {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.params == nil {
		v, err := defaultParamsValidator()
		if err != nil {
			return nil, fmt.Errorf("failed to compile option schema: %w", err)
		}
		l.params = v
	}
	return l, nil
}

// Load validates cfg and decodes it over the documented defaults.
// Every rejection is a *errors.ValidationError.
func (l *Loader) Load(cfg Config) (entities.InvocationRequest, error) {
	params := Normalize(cfg)

	if err := CheckInputs(params); err != nil {
		return entities.InvocationRequest{}, err
	}
	if err := l.params.Validate(params); err != nil {
		return entities.InvocationRequest{}, err
	}

	req, err := decode(params)
	if err != nil {
		return entities.InvocationRequest{}, err
	}
	if err := validation.ValidateRequest(req); err != nil {
		return entities.InvocationRequest{}, err
	}
	return req, nil
}

// Load is a convenience wrapper around a default Loader.
func Load(cfg Config) (entities.InvocationRequest, error) {
	l, err := NewLoader()
	if err != nil {
		return entities.InvocationRequest{}, err
	}
	return l.Load(cfg)
}

// Normalize returns a copy of cfg without null values, empty string options or
// engine-internal keys, with boolean-like strings ("yes", "off", "1", ...) on
// boolean options converted to booleans.
func Normalize(cfg Config) Config {
	out := make(Config, len(cfg))
	for k, v := range cfg {
		if v == nil || strings.HasPrefix(k, internalPrefix) {
			continue
		}
		out[k] = v
	}
	for _, key := range stringOptions {
		if s, ok := out[key].(string); ok && s == "" {
			delete(out, key)
		}
	}
	for _, key := range boolOptions {
		s, ok := out[key].(string)
		if !ok {
			continue
		}
		if b, ok := parseBool(s); ok {
			out[key] = b
		}
	}
	return out
}

// CheckInputs enforces that exactly one of input_path and input is present.
// An empty string counts as absent.
func CheckInputs(cfg Config) error {
	hasPath := present(cfg, validation.FieldInputPath)
	hasInput := present(cfg, validation.FieldInput)
	switch {
	case hasPath && hasInput:
		return pluginerrors.NewMutuallyExclusiveError(validation.FieldInputPath, validation.FieldInput)
	case !hasPath && !hasInput:
		return pluginerrors.NewRequiredOneOfError(validation.FieldInputPath, validation.FieldInput)
	}
	return nil
}

func present(cfg Config, key string) bool {
	v, ok := cfg[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

func decode(params Config) (entities.InvocationRequest, error) {
	req := entities.DefaultInvocationRequest()

	b, err := json.Marshal(params)
	if err != nil {
		return req, &pluginerrors.ValidationError{Err: fmt.Errorf("failed to marshal options: %w", err)}
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, &pluginerrors.ValidationError{Err: fmt.Errorf("failed to decode options: %w", err)}
	}
	return req, nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on", "1", "true", "y", "t":
		return true, true
	case "no", "off", "0", "false", "n", "f":
		return false, true
	}
	return false, false
}
