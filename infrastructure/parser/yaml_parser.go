// Package parser decodes the arguments document passed to the plugin.
package parser

import (
	"fmt"

	"github.com/reglet-dev/butane-plugin/domain/ports"
	"gopkg.in/yaml.v3"
)

// ModuleArgsKey wraps the options in documents written by the engine.
const ModuleArgsKey = "ANSIBLE_MODULE_ARGS"

// YamlArgsParser implements ArgsParser for YAML (and therefore JSON) documents.
type YamlArgsParser struct{}

// NewArgsParser creates a new YamlArgsParser.
func NewArgsParser() ports.ArgsParser {
	return &YamlArgsParser{}
}

// Parse unmarshals data into a parameter map. An empty document yields an
// empty map. When the options are wrapped in ANSIBLE_MODULE_ARGS the inner
// map is returned.
func (p *YamlArgsParser) Parse(data []byte) (map[string]any, error) {
	var params map[string]any
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	if params == nil {
		return map[string]any{}, nil
	}

	wrapped, ok := params[ModuleArgsKey]
	if !ok {
		return params, nil
	}
	inner, ok := wrapped.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a mapping", ModuleArgsKey)
	}
	return inner, nil
}
