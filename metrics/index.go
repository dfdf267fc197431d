// SPDX-License-Identifier: MIT
// Package: fuzzar/metrics
//
// index.go — per-item row sets of non-zero membership.
//
// Under the min t-norm a row contributes to an itemset only if every item of
// the itemset has a non-zero degree there. Sums restricted to the intersection
// of the items' row sets therefore add exactly the same non-zero terms, in the
// same row order, as a full scan: results are bit-identical, and sparse items
// (narrow fuzzy sets) skip most rows.

package metrics

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/fuzzar/fuzzify"
)

// RowIndex maps each item to the rows where its degree is non-zero.
// Read-only after construction; safe for concurrent use.
type RowIndex struct {
	rows  uint
	all   *bitset.BitSet
	items []*bitset.BitSet
}

// NewRowIndex scans t once.
//
// Complexity: O(rows × items) time, O(rows × items / 64) words of memory.
func NewRowIndex(t *fuzzify.Table) *RowIndex {
	n := uint(t.Rows())
	width := t.Universe().Len()
	x := &RowIndex{rows: n, all: bitset.New(n), items: make([]*bitset.BitSet, width)}
	for i := range x.items {
		x.items[i] = bitset.New(n)
	}
	for r := uint(0); r < n; r++ {
		x.all.Set(r)
		for i, d := range t.Row(int(r)) {
			if d > 0 {
				x.items[i].Set(r)
			}
		}
	}
	return x
}

// Rows returns the rows where every item is non-zero. The result is a fresh
// set owned by the caller. An empty itemset matches every row.
func (x *RowIndex) Rows(items []int) *bitset.BitSet {
	out := x.all.Clone()
	for _, i := range items {
		out.InPlaceIntersection(x.items[i])
	}
	return out
}

// Count returns the number of rows where item i is non-zero.
func (x *RowIndex) Count(i int) int { return int(x.items[i].Count()) }

// support is Support restricted to the indexed rows.
func (x *RowIndex) support(t *fuzzify.Table, items []int) float64 {
	if x.rows == 0 {
		return 0
	}
	rows := x.Rows(items)
	sum := 0.0
	for r, ok := rows.NextSet(0); ok; r, ok = rows.NextSet(r + 1) {
		sum += minDegree(t.Row(int(r)), items)
	}
	return sum / float64(x.rows)
}

// confidence is Confidence restricted to the indexed rows.
func (x *RowIndex) confidence(t *fuzzify.Table, ante, cons []int) float64 {
	anteRows := x.Rows(ante)
	bothRows := anteRows.Clone()
	for _, i := range cons {
		bothRows.InPlaceIntersection(x.items[i])
	}

	num, den := 0.0, 0.0
	for r, ok := anteRows.NextSet(0); ok; r, ok = anteRows.NextSet(r + 1) {
		row := t.Row(int(r))
		a := minDegree(row, ante)
		den += a
		if bothRows.Test(r) {
			num += min(a, minDegree(row, cons))
		}
	}
	if den > 0 {
		return num / den
	}
	return 0
}
