// SPDX-License-Identifier: MIT
// Package: fuzzar/config
//
// load.go — YAML and JSON loaders.
//
// YAML accepts two shapes for `variables`:
//
//	variables:            # mapping form, order of keys is kept
//	  A:
//	    Low: [0, 0, 20]
//
//	variables:            # list form, same as JSON
//	  - name: A
//	    sets:
//	      - {label: Low, a: 0, b: 0, c: 20}
//
// The mapping form is walked through yaml.Node so document order survives;
// decoding it into a Go map would randomize the item universe.

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fuzzar/fuzzy"
)

// document mirrors the YAML file. Pointers distinguish "absent" from 0.
type document struct {
	MinSupport    *float64  `yaml:"min_support"`
	MinConfidence *float64  `yaml:"min_confidence"`
	MaxRuleLength int       `yaml:"max_rule_length"`
	EdgePolicy    string    `yaml:"edge_policy"`
	Variables     yaml.Node `yaml:"variables"`
}

// Load reads and parses a YAML configuration file. The result is not
// validated; call Check or Validate.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: Load: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: Load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document. Omitted thresholds take the defaults.
func Parse(data []byte) (Config, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("config: yaml: %w", err)
	}

	cfg := New()
	if doc.MinSupport != nil {
		cfg.MinSupport = *doc.MinSupport
	}
	if doc.MinConfidence != nil {
		cfg.MinConfidence = *doc.MinConfidence
	}
	cfg.MaxRuleLength = doc.MaxRuleLength

	policy, err := fuzzy.ParseEdgePolicy(doc.EdgePolicy)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	cfg.EdgePolicy = policy

	vars, err := decodeVariables(&doc.Variables)
	if err != nil {
		return Config{}, err
	}
	cfg.Variables = vars

	return cfg, nil
}

// ParseJSON decodes the JSON form used by the HTTP API. Omitted thresholds
// take the defaults.
func ParseJSON(data []byte) (Config, error) {
	cfg := New()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: json: %w", err)
	}
	return cfg, nil
}

// decodeVariables accepts the mapping or the list form.
func decodeVariables(node *yaml.Node) ([]Variable, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.SequenceNode:
		var vars []Variable
		if err := node.Decode(&vars); err != nil {
			return nil, fmt.Errorf("config: variables: %w", err)
		}
		return vars, nil
	case yaml.MappingNode:
		// handled below
	default:
		return nil, fmt.Errorf("config: line %d: variables must be a mapping or a list", node.Line)
	}

	vars := make([]Variable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, body := node.Content[i], node.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("config: line %d: variable %q must map labels to [a, b, c]", body.Line, key.Value)
		}
		v := Variable{Name: key.Value, Sets: make([]fuzzy.Set, 0, len(body.Content)/2)}
		for j := 0; j+1 < len(body.Content); j += 2 {
			label, triple := body.Content[j], body.Content[j+1]
			var abc []float64
			if err := triple.Decode(&abc); err != nil {
				return nil, fmt.Errorf("config: line %d: %s.%s: %w", triple.Line, v.Name, label.Value, err)
			}
			if len(abc) != 3 {
				return nil, fmt.Errorf("%w: %w: line %d: %s.%s needs 3 parameters, got %d",
					ErrConfiguration, ErrBadFuzzySet, triple.Line, v.Name, label.Value, len(abc))
			}
			v.Sets = append(v.Sets, fuzzy.Set{Label: label.Value, A: abc[0], B: abc[1], C: abc[2]})
		}
		vars = append(vars, v)
	}

	return vars, nil
}
