// SPDX-License-Identifier: MIT
// Package: fuzzar/fuzzy
//
// membership.go — triangular membership evaluation.
//
// Contract:
//   • Result is always in [0,1].
//   • a == b == c ⇒ crisp indicator of x == a.
//   • Degenerate half (b == a or c == b) follows the EdgePolicy.

package fuzzy

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadSet indicates a fuzzy set whose parameters violate a ≤ b ≤ c,
// are not finite, or whose label is empty.
var ErrBadSet = errors.New("fuzzy: invalid triangular set")

// EdgePolicy decides what a degenerate half of a triangle contributes.
type EdgePolicy int

const (
	// Strict: a degenerate half contributes 0 (min(0, ·) collapses the side).
	Strict EdgePolicy = iota

	// Shoulder: a degenerate half contributes 1, turning (a,a,c) into a left
	// shoulder and (a,c,c) into a right shoulder.
	Shoulder
)

// String returns the policy name used in configuration files.
func (p EdgePolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Shoulder:
		return "shoulder"
	default:
		return fmt.Sprintf("EdgePolicy(%d)", int(p))
	}
}

// ParseEdgePolicy maps "strict" (or "") and "shoulder" to a policy.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "", "strict":
		return Strict, nil
	case "shoulder":
		return Shoulder, nil
	default:
		return Strict, fmt.Errorf("fuzzy: unknown edge policy %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p EdgePolicy) MarshalText() ([]byte, error) {
	switch p {
	case Strict, Shoulder:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("fuzzy: unknown edge policy %d", int(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *EdgePolicy) UnmarshalText(text []byte) error {
	v, err := ParseEdgePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Set is a triangular fuzzy set over one variable.
type Set struct {
	Label string  `yaml:"label" json:"label" msgpack:"label"`
	A     float64 `yaml:"a" json:"a" msgpack:"a"`
	B     float64 `yaml:"b" json:"b" msgpack:"b"`
	C     float64 `yaml:"c" json:"c" msgpack:"c"`
}

// Validate reports ErrBadSet (wrapped with the label) when the set is unusable.
func (s Set) Validate() error {
	if s.Label == "" {
		return fmt.Errorf("%w: empty label", ErrBadSet)
	}
	for _, v := range [...]float64{s.A, s.B, s.C} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=(%g,%g,%g) has non-finite parameter", ErrBadSet, s.Label, s.A, s.B, s.C)
		}
	}
	if s.A > s.B || s.B > s.C {
		return fmt.Errorf("%w: %s=(%g,%g,%g) violates a<=b<=c", ErrBadSet, s.Label, s.A, s.B, s.C)
	}

	return nil
}

// Degree evaluates the set at x under the Strict policy.
func (s Set) Degree(x float64) float64 {
	return Triangular(x, s.A, s.B, s.C)
}

// DegreeWith evaluates the set at x under the given policy.
func (s Set) DegreeWith(p EdgePolicy, x float64) float64 {
	return TriangularWith(p, x, s.A, s.B, s.C)
}

// Triangular evaluates the triangular membership (a,b,c) at x with the
// Strict edge policy.
//
// Complexity: O(1).
func Triangular(x, a, b, c float64) float64 {
	return TriangularWith(Strict, x, a, b, c)
}

// TriangularWith evaluates the triangular membership (a,b,c) at x.
//
// Implementation:
//   - a == b == c: return 1 iff x == a.
//   - left  = (x-a)/(b-a), or the policy value when b == a.
//   - right = (c-x)/(c-b), or the policy value when c == b.
//   - clamp(min(left, right), 0, 1).
//
// Complexity: O(1).
func TriangularWith(p EdgePolicy, x, a, b, c float64) float64 {
	if a == b && b == c {
		if x == a {
			return 1
		}
		return 0
	}

	flat := 0.0
	if p == Shoulder {
		flat = 1
	}

	left, right := flat, flat
	if b != a {
		left = (x - a) / (b - a)
	}
	if c != b {
		right = (c - x) / (c - b)
	}

	return clamp01(math.Min(left, right))
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
