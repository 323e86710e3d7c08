// Package schema provides JSON schema generation for the plugin's options.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/reglet-dev/butane-plugin/domain/entities"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
// Unknown properties are disallowed and no $id is emitted.
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
		Anonymous:      true,
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// RequestSchema returns the schema of the invocation options.
func RequestSchema() ([]byte, error) {
	return GenerateSchema(&entities.InvocationRequest{})
}
