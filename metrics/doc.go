// SPDX-License-Identifier: MIT

// Package metrics scores candidate rules against a fuzzy degree table.
//
// With the minimum t-norm as fuzzy AND, and μ_X(r) = min over items of X of
// the degree of row r:
//
//	support(X)        = (1/N) Σ_r μ_X(r)
//	confidence(A ⇒ C) = Σ_r min(μ_A(r), μ_C(r)) / Σ_r μ_A(r)     (0 if Σ μ_A = 0)
//	CF(A ⇒ C)         = (conf − support(C)) / (1 − support(C))    (0 if support(C) = 1)
//
// support and confidence lie in [0,1]; CF lies in [-1,1]. A positive CF means
// the antecedent raises belief in the consequent above its base rate.
//
// All functions are pure and only read the table, so they are safe to call
// from many goroutines at once. Scorer adds a concurrent memo of itemset
// supports so that the support of a combination, shared by all of its splits,
// and of a consequent, shared by many rules, is computed once.
//
// The Scorer also keeps a RowIndex: for each item, a bitset of the rows where
// its degree is non-zero. Sums then visit only rows where every involved item
// fires. Skipped rows contribute exactly 0, so scores match the plain
// functions bit for bit.
package metrics
