// SPDX-License-Identifier: MIT
// Package: fuzzar/miner
//
// types.go — Rule, options and sentinel errors.

package miner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/fuzzar/fuzzify"
	"github.com/katalvlaran/fuzzar/itemset"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("miner: invalid option supplied")

// Rule is an accepted association rule with its statistics.
type Rule struct {
	Antecedent      []fuzzify.Item `json:"antecedent"`
	Consequent      []fuzzify.Item `json:"consequent"`
	Support         float64        `json:"support"`
	Confidence      float64        `json:"confidence"`
	CertaintyFactor float64        `json:"certainty_factor"`
}

// String renders the rule as "IF A is Low AND B is High THEN C is Low".
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString("IF ")
	writeClause(&b, r.Antecedent)
	b.WriteString(" THEN ")
	writeClause(&b, r.Consequent)
	return b.String()
}

func writeClause(b *strings.Builder, items []fuzzify.Item) {
	for i, it := range items {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(it.Variable)
		b.WriteString(" is ")
		b.WriteString(it.Label)
	}
}

// Option configures a mining run.
// Invalid values are recorded and surfaced as ErrOptionViolation by Mine.
type Option func(*Options)

// Options holds the runtime knobs of a mining run. The mining parameters
// proper (thresholds, rule length, fuzzy sets) live in config.Config.
type Options struct {
	// Ctx allows cancellation; checked between candidates.
	Ctx context.Context

	// Workers is the number of scoring goroutines. 1 means sequential.
	Workers int

	// Logger receives Debug progress records.
	Logger *zap.Logger

	// Policy selects how combinations are split into rules.
	Policy itemset.PartitionPolicy

	// TopN, if > 0, truncates the ranked list.
	TopN int

	// Filter, if set, drops ranked rules it does not match before TopN applies.
	Filter *Filter

	// OnRule is called for every returned rule in final order.
	OnRule func(Rule)

	err error
}

// DefaultOptions returns sequential, silent, PrefixSplit, unlimited options.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Workers: 1,
		Logger:  zap.NewNop(),
		Policy:  itemset.PrefixSplit,
		OnRule:  func(Rule) {},
	}
}

// WithWorkers sets the number of scoring goroutines.
//
//	n ≥ 1: use n workers
//	n < 1: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithContext sets a context for cancellation. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithPartitionPolicy selects the split strategy.
func WithPartitionPolicy(p itemset.PartitionPolicy) Option {
	return func(o *Options) {
		switch p {
		case itemset.PrefixSplit, itemset.AllPartitions:
			o.Policy = p
		default:
			o.err = fmt.Errorf("%w: unknown partition policy %d", ErrOptionViolation, int(p))
		}
	}
}

// WithTopN keeps only the n best rules. 0 keeps all; n < 0 is invalid.
func WithTopN(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: TopN cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.TopN = n
	}
}

// WithFilter keeps only the rules matching the expression src (see Filter).
// A blank src disables filtering; a malformed one is an ErrOptionViolation.
func WithFilter(src string) Option {
	return func(o *Options) {
		f, err := NewFilter(src)
		if err != nil {
			o.err = fmt.Errorf("%w: %w", ErrOptionViolation, err)
			return
		}
		if f.expr == nil {
			o.Filter = nil
			return
		}
		o.Filter = f
	}
}

// WithOnRule registers a hook called for every returned rule. nil is ignored.
func WithOnRule(fn func(Rule)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRule = fn
		}
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
