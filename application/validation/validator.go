// Package validation enforces the option rules of an invocation: the JSON schema
// of the raw parameter map and the struct-level rules of the decoded request.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/reglet-dev/butane-plugin/application/schema"
	"github.com/reglet-dev/butane-plugin/domain/entities"
	pluginerrors "github.com/reglet-dev/butane-plugin/domain/errors"
	"github.com/reglet-dev/butane-plugin/domain/ports"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	FieldInputPath = "input_path"
	FieldInput     = "input"
)

const schemaResource = "butane-options.json"

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRequest checks the struct-level rules of req: exactly one of
// input_path and input, and a non-empty bin.
func ValidateRequest(req entities.InvocationRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &pluginerrors.ValidationError{Err: err}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "excluded_with":
		return pluginerrors.NewMutuallyExclusiveError(FieldInputPath, FieldInput)
	case "required_without":
		return pluginerrors.NewRequiredOneOfError(FieldInputPath, FieldInput)
	default:
		return &pluginerrors.ValidationError{
			Err:   fmt.Errorf("failed on the '%s' rule", fe.Tag()),
			Field: fe.Field(),
		}
	}
}

// ParamsValidator implements ports.ParamsValidator using the generated option schema.
type ParamsValidator struct {
	schema *jsonschema.Schema
}

// NewParamsValidator compiles the option schema.
func NewParamsValidator() (*ParamsValidator, error) {
	raw, err := schema.RequestSchema()
	if err != nil {
		return nil, err
	}
	return NewParamsValidatorFromSchema(raw)
}

// NewParamsValidatorFromSchema compiles an arbitrary JSON schema document.
func NewParamsValidatorFromSchema(raw []byte) (*ParamsValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	sch, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("invalid option schema: %w", err)
	}
	return &ParamsValidator{schema: sch}, nil
}

var _ ports.ParamsValidator = (*ParamsValidator)(nil)

// Validate checks params against the schema.
func (v *ParamsValidator) Validate(params map[string]any) error {
	// Round-trip through JSON so the validator sees JSON types only.
	b, err := json.Marshal(params)
	if err != nil {
		return &pluginerrors.ValidationError{Err: fmt.Errorf("failed to prepare validation object: %w", err)}
	}
	var obj interface{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return &pluginerrors.ValidationError{Err: fmt.Errorf("failed to prepare validation object: %w", err)}
	}

	if err := v.schema.Validate(obj); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := leafCause(ve)
			return &pluginerrors.ValidationError{
				Err:   errors.New(leaf.Message),
				Field: strings.TrimPrefix(leaf.InstanceLocation, "/"),
			}
		}
		return &pluginerrors.ValidationError{Err: err}
	}
	return nil
}

// leafCause follows the first cause down to the most specific failure.
func leafCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
