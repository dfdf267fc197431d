// SPDX-License-Identifier: MIT

// Package itemset enumerates candidate rules over an ordered item universe.
//
// For every itemset length k = 2..MaxLength the enumerator walks the
// k-combinations of item indices in lexicographic order (the order of
// Python's itertools.combinations), skips combinations that use the same
// variable twice, and splits every surviving combination into an
// antecedent and a consequent:
//
//	PrefixSplit    (default)  s = 1..k-1: antecedent = first s items.
//	AllPartitions             every non-empty proper subset, by bitmask.
//
// PrefixSplit only cuts at contiguous boundaries of the combination, so for
// k ≥ 3 it yields k-1 rules per combination rather than 2^k-2. It is the
// default because it is the established behaviour; AllPartitions is the
// exhaustive alternative.
//
// The Enumerator is lazy and restartable: Next produces one candidate at a
// time and Reset rewinds to the first candidate. Nothing is materialized, so
// callers can prune (SkipCombination) or fan candidates out to workers.
// An Enumerator is not safe for concurrent use; give each goroutine its own,
// or pull from one goroutine and distribute.
//
// Counting: Count returns the exact number of candidates in closed form:
// with L_v labels on variable v, the number of valid k-combinations is the
// elementary symmetric polynomial e_k(L_1..L_m); each yields k-1 candidates
// (PrefixSplit) or 2^k-2 (AllPartitions).
package itemset
