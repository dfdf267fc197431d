// SPDX-License-Identifier: MIT
// Package: fuzzar/miner
//
// filter.go — boolean post-filters over mined rules.
//
// A filter is a govaluate expression evaluated once per rule with these
// parameters bound:
//
//	support, confidence, cf    float64 metrics (certainty_factor aliases cf)
//	length                     float64 item count of the rule
//	antecedent, consequent     strings such as "A='Low' & B='High'"
//
// Examples:
//
//	cf > 0.5 && length <= 3
//	consequent =~ "fan_speed" && support >= 0.1

package miner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/katalvlaran/fuzzar/fuzzify"
)

// ErrBadFilter indicates a filter expression that fails to parse or that
// evaluates to something other than a boolean.
var ErrBadFilter = errors.New("miner: bad filter expression")

// Filter is a compiled rule predicate. Safe for concurrent use.
type Filter struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// NewFilter compiles src. An empty or blank src yields a filter that keeps
// every rule.
func NewFilter(src string) (*Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return &Filter{}, nil
	}
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadFilter, src, err)
	}
	return &Filter{src: src, expr: expr}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.src }

// Match reports whether r satisfies the filter.
func (f *Filter) Match(r Rule) (bool, error) {
	if f.expr == nil {
		return true, nil
	}
	out, err := f.expr.Evaluate(filterParams(r))
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrBadFilter, f.src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %q yields %T, want bool", ErrBadFilter, f.src, out)
	}
	return ok, nil
}

// Apply returns the rules matching f, preserving order. The input is not
// modified.
func (f *Filter) Apply(rules []Rule) ([]Rule, error) {
	if f.expr == nil {
		return append([]Rule(nil), rules...), nil
	}
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// FilterRules compiles src and applies it to rules.
func FilterRules(rules []Rule, src string) ([]Rule, error) {
	f, err := NewFilter(src)
	if err != nil {
		return nil, err
	}
	return f.Apply(rules)
}

func filterParams(r Rule) map[string]interface{} {
	return map[string]interface{}{
		"support":          r.Support,
		"confidence":       r.Confidence,
		"cf":               r.CertaintyFactor,
		"certainty_factor": r.CertaintyFactor,
		"length":           float64(len(r.Antecedent) + len(r.Consequent)),
		"antecedent":       joinItems(r.Antecedent),
		"consequent":       joinItems(r.Consequent),
	}
}

func joinItems(items []fuzzify.Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " & ")
}
