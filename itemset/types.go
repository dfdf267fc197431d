// SPDX-License-Identifier: MIT
// Package: fuzzar/itemset
//
// types.go — Universe contract, Candidate, options and sentinel errors.

package itemset

import (
	"errors"
	"fmt"
)

// ErrOptionViolation is returned by New when an Option received an invalid value.
var ErrOptionViolation = errors.New("itemset: invalid option supplied")

// maxAllPartitionsLength bounds k under AllPartitions so bitmasks fit in uint64.
const maxAllPartitionsLength = 62

// Universe is the view of the item universe the enumerator needs:
// the number of items and the variable each item belongs to.
// *fuzzify.Universe satisfies it.
type Universe interface {
	Len() int
	VarOf(i int) int
}

// Candidate is one (antecedent, consequent) split of a combination.
// Indices refer to the Universe. Seq is the 0-based position of the
// candidate in enumeration order and serves as a stable tie-break key.
type Candidate struct {
	Antecedent []int
	Consequent []int
	Seq        int
}

// Items returns antecedent followed by consequent: the whole itemset.
func (c Candidate) Items() []int {
	out := make([]int, 0, len(c.Antecedent)+len(c.Consequent))
	out = append(out, c.Antecedent...)
	return append(out, c.Consequent...)
}

// PartitionPolicy selects how a combination is split into rules.
type PartitionPolicy int

const (
	// PrefixSplit cuts the combination at s = 1..k-1.
	PrefixSplit PartitionPolicy = iota

	// AllPartitions uses every non-empty proper subset as antecedent.
	AllPartitions
)

// String returns the policy name.
func (p PartitionPolicy) String() string {
	switch p {
	case PrefixSplit:
		return "prefix"
	case AllPartitions:
		return "all"
	default:
		return fmt.Sprintf("PartitionPolicy(%d)", int(p))
	}
}

// ParsePartitionPolicy resolves "prefix" (or "") and "all".
func ParsePartitionPolicy(s string) (PartitionPolicy, error) {
	switch s {
	case "", "prefix":
		return PrefixSplit, nil
	case "all":
		return AllPartitions, nil
	default:
		return PrefixSplit, fmt.Errorf("%w: unknown partition policy %q", ErrOptionViolation, s)
	}
}

// Option configures an Enumerator.
type Option func(*Options)

// Options holds enumerator parameters.
type Options struct {
	// MaxLength caps the itemset size. 0 means "number of variables".
	MaxLength int

	// Policy chooses the split strategy.
	Policy PartitionPolicy

	err error
}

// DefaultOptions: no explicit length cap, PrefixSplit.
func DefaultOptions() Options {
	return Options{MaxLength: 0, Policy: PrefixSplit}
}

// WithMaxLength caps the itemset length.
//
//	n >= 2: itemsets of length 2..n
//	n == 0: number of variables
//	otherwise: ErrOptionViolation
func WithMaxLength(n int) Option {
	return func(o *Options) {
		if n != 0 && n < 2 {
			o.err = fmt.Errorf("%w: MaxLength must be 0 or >= 2 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxLength = n
	}
}

// WithPartitionPolicy selects the split strategy.
func WithPartitionPolicy(p PartitionPolicy) Option {
	return func(o *Options) {
		switch p {
		case PrefixSplit, AllPartitions:
			o.Policy = p
		default:
			o.err = fmt.Errorf("%w: unknown partition policy %d", ErrOptionViolation, int(p))
		}
	}
}
