// SPDX-License-Identifier: MIT
// Package: fuzzar/config
//
// config.go — Config/Variable types, defaults and validation.
//
// Validation order (first failure wins):
//   1. variables: present, unique, each with ≥1 set, unique labels, valid triples.
//   2. thresholds: MinSupport, MinConfidence in [0,1].
//   3. rule length: 0 (auto) or 2..len(Variables).
//   4. dataset: every variable is a column, ≥1 row, finite values.

package config

import (
	"errors"
	"fmt"
	"math"

	mapset "github.com/deckarep/golang-set"

	"github.com/katalvlaran/fuzzar/dataset"
	"github.com/katalvlaran/fuzzar/fuzzy"
)

// ErrConfiguration is matched by every configuration error.
var ErrConfiguration = errors.New("config: invalid configuration")

// Specific configuration errors; each is reported together with ErrConfiguration.
var (
	ErrNoVariables       = errors.New("config: no variables")
	ErrDuplicateVariable = errors.New("config: duplicate variable")
	ErrNoLabels          = errors.New("config: variable has no fuzzy sets")
	ErrDuplicateLabel    = errors.New("config: duplicate label")
	ErrBadFuzzySet       = errors.New("config: bad fuzzy set")
	ErrThresholdRange    = errors.New("config: threshold outside [0,1]")
	ErrRuleLength        = errors.New("config: bad max rule length")
	ErrUnknownVariable   = errors.New("config: variable not in dataset")
)

// Defaults applied by New and by the file loaders when a field is omitted.
const (
	DefaultMinSupport    = 0.1
	DefaultMinConfidence = 0.5
	minRuleLength        = 2
)

// Variable is a named numeric column with its linguistic terms.
type Variable struct {
	Name string      `json:"name" yaml:"name" msgpack:"name"`
	Sets []fuzzy.Set `json:"sets" yaml:"sets" msgpack:"sets"`
}

// Labels returns the labels in declaration order.
func (v Variable) Labels() []string {
	out := make([]string, len(v.Sets))
	for i, s := range v.Sets {
		out[i] = s.Label
	}
	return out
}

// Set returns the fuzzy set with the given label.
func (v Variable) Set(label string) (fuzzy.Set, bool) {
	for _, s := range v.Sets {
		if s.Label == label {
			return s, true
		}
	}
	return fuzzy.Set{}, false
}

// Config is the complete mining configuration.
//
// MaxRuleLength == 0 means "number of variables". A zero Config has both
// thresholds at 0 and accepts every candidate; use New for the defaults.
type Config struct {
	Variables     []Variable       `json:"variables"`
	MinSupport    float64          `json:"min_support"`
	MinConfidence float64          `json:"min_confidence"`
	MaxRuleLength int              `json:"max_rule_length,omitempty"`
	EdgePolicy    fuzzy.EdgePolicy `json:"edge_policy"`
}

// New returns a Config over vars with the default thresholds.
func New(vars ...Variable) Config {
	return Config{
		Variables:     vars,
		MinSupport:    DefaultMinSupport,
		MinConfidence: DefaultMinConfidence,
	}
}

// VariableNames returns the variable names in order.
func (c Config) VariableNames() []string {
	out := make([]string, len(c.Variables))
	for i, v := range c.Variables {
		out[i] = v.Name
	}
	return out
}

// RuleLength resolves MaxRuleLength: 0 means the number of variables.
func (c Config) RuleLength() int {
	if c.MaxRuleLength == 0 {
		return len(c.Variables)
	}
	return c.MaxRuleLength
}

// configErr reports sentinel together with ErrConfiguration.
func configErr(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w: %s", ErrConfiguration, sentinel, fmt.Sprintf(format, args...))
}

// Check validates the configuration on its own, without a dataset.
func (c Config) Check() error {
	if len(c.Variables) == 0 {
		return configErr(ErrNoVariables, "at least one variable is required")
	}

	names := mapset.NewSet()
	for _, v := range c.Variables {
		if v.Name == "" {
			return configErr(ErrNoVariables, "variable with empty name")
		}
		if !names.Add(v.Name) {
			return configErr(ErrDuplicateVariable, "%q", v.Name)
		}
		if len(v.Sets) == 0 {
			return configErr(ErrNoLabels, "%q", v.Name)
		}
		labels := mapset.NewSet()
		for _, s := range v.Sets {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("%w: %w: variable %q: %w", ErrConfiguration, ErrBadFuzzySet, v.Name, err)
			}
			if !labels.Add(s.Label) {
				return configErr(ErrDuplicateLabel, "%q on variable %q", s.Label, v.Name)
			}
		}
	}

	if !inUnit(c.MinSupport) {
		return configErr(ErrThresholdRange, "min_support=%g", c.MinSupport)
	}
	if !inUnit(c.MinConfidence) {
		return configErr(ErrThresholdRange, "min_confidence=%g", c.MinConfidence)
	}

	if c.MaxRuleLength != 0 && (c.MaxRuleLength < minRuleLength || c.MaxRuleLength > len(c.Variables)) {
		return configErr(ErrRuleLength, "max_rule_length=%d, want %d..%d", c.MaxRuleLength, minRuleLength, len(c.Variables))
	}

	switch c.EdgePolicy {
	case fuzzy.Strict, fuzzy.Shoulder:
	default:
		return configErr(ErrBadFuzzySet, "unknown edge policy %d", int(c.EdgePolicy))
	}

	return nil
}

// Validate runs Check and then verifies ds against the configuration. ds must
// be non-nil. No partial work happens before Validate succeeds.
func (c Config) Validate(ds *dataset.Dataset) error {
	if err := c.Check(); err != nil {
		return err
	}
	if ds == nil {
		return fmt.Errorf("config: nil dataset: %w", dataset.ErrEmptyDataset)
	}
	if ds.Len() == 0 {
		return fmt.Errorf("config: %w", dataset.ErrEmptyDataset)
	}
	for _, v := range c.Variables {
		if !ds.Has(v.Name) {
			return configErr(ErrUnknownVariable, "%q (dataset columns: %v)", v.Name, ds.Columns())
		}
	}
	if err := ds.CheckFinite(c.VariableNames()...); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// inUnit reports whether v lies in [0,1]; NaN is rejected.
func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
