// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph
//
// infer_options.go — tunable options and result type for forward chaining.

package rulegraph

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotItem is returned when a fact is not an item node.
	ErrNotItem = errors.New("rulegraph: fact is not an item node")

	// ErrOptionViolation is returned when an invalid InferOption is supplied.
	ErrOptionViolation = errors.New("rulegraph: invalid option supplied")
)

// InferOption configures Infer. Invalid values are recorded and surfaced as
// ErrOptionViolation when Infer is invoked.
type InferOption func(*InferOptions)

// InferOptions holds parameters and callbacks for forward chaining.
type InferOptions struct {
	// Ctx allows cancellation; checked once per dequeued item.
	Ctx context.Context

	// MaxDepth, if > 0, stops firing rules beyond this chaining round.
	MaxDepth int

	// MinCertainty skips rules whose certainty factor is below it.
	MinCertainty float64

	// OnFire is called when a rule fires, with its round. A non-nil error
	// aborts the inference and is returned wrapped.
	OnFire func(ruleID string, depth int) error

	err error
}

// DefaultInferOptions: background context, unlimited depth, every rule
// allowed, no-op hook.
func DefaultInferOptions() InferOptions {
	return InferOptions{
		Ctx:          context.Background(),
		MinCertainty: -1,
		OnFire:       func(string, int) error { return nil },
	}
}

// WithInferContext sets a context for cancellation. nil is ignored.
func WithInferContext(ctx context.Context) InferOption {
	return func(o *InferOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth limits chaining to d rounds.
//
//	d > 0: at most d rounds
//	d == 0: no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) InferOption {
	return func(o *InferOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithMinCertainty only fires rules with certainty factor ≥ cf ∈ [-1,1].
func WithMinCertainty(cf float64) InferOption {
	return func(o *InferOptions) {
		if math.IsNaN(cf) || cf < -1 || cf > 1 {
			o.err = fmt.Errorf("%w: MinCertainty must lie in [-1,1] (%g)", ErrOptionViolation, cf)
			return
		}
		o.MinCertainty = cf
	}
}

// WithOnFire registers a hook run for every fired rule. nil is ignored.
func WithOnFire(fn func(ruleID string, depth int) error) InferOption {
	return func(o *InferOptions) {
		if fn != nil {
			o.OnFire = fn
		}
	}
}

// Inference holds the outcome of forward chaining:
//   - Order: known items, facts first, then derived items in derivation order.
//   - Depth: item ID → round at which it became known (facts are 0).
//   - Parent: derived item ID → the rule that first concluded it.
//   - Fired: rule IDs in firing order.
type Inference struct {
	Order  []string
	Depth  map[string]int
	Parent map[string]string
	Fired  []string

	antecedents map[string][]string
}

// Derived reports whether item is known after chaining.
func (r *Inference) Derived(item string) bool {
	_, ok := r.Depth[item]
	return ok
}

// Explain returns the rules needed to derive item, in firing order.
// A fact yields an empty slice; an unknown item is ErrNodeNotFound.
func (r *Inference) Explain(item string) ([]string, error) {
	if !r.Derived(item) {
		return nil, fmt.Errorf("Explain: %q was not derived: %w", item, ErrNodeNotFound)
	}
	need := make(map[string]bool)
	stack := []string{item}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rule, ok := r.Parent[cur]
		if !ok || need[rule] {
			continue
		}
		need[rule] = true
		stack = append(stack, r.antecedents[rule]...)
	}

	out := make([]string, 0, len(need))
	for _, rule := range r.Fired {
		if need[rule] {
			out = append(out, rule)
		}
	}
	return out, nil
}
