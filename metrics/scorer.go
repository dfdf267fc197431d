// SPDX-License-Identifier: MIT
// Package: fuzzar/metrics
//
// scorer.go — memoizing scorer shared by mining workers.
//
// The memo maps a canonical itemset key (sorted indices) to its support.
// Two workers racing on the same key both compute the same value; the second
// Set is a harmless overwrite with an identical float.

package metrics

import (
	"strconv"
	"strings"

	cmap "github.com/orcaman/concurrent-map"
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/fuzzar/fuzzify"
	"github.com/katalvlaran/fuzzar/itemset"
)

// Score is the triple attached to a rule.
type Score struct {
	Support         float64
	Confidence      float64
	CertaintyFactor float64
}

// Scorer evaluates candidates against one table. Safe for concurrent use.
type Scorer struct {
	table *fuzzify.Table
	index *RowIndex
	memo  cmap.ConcurrentMap
}

// NewScorer returns a Scorer over t with an empty memo and a fresh row index.
func NewScorer(t *fuzzify.Table) *Scorer {
	return &Scorer{table: t, index: NewRowIndex(t), memo: cmap.New()}
}

// Table returns the scored table.
func (s *Scorer) Table() *fuzzify.Table { return s.table }

// Index returns the row index backing the scorer.
func (s *Scorer) Index() *RowIndex { return s.index }

// Memoized returns the number of itemsets whose support is cached.
func (s *Scorer) Memoized() int { return s.memo.Count() }

// Support returns the (memoized) support of items. Order of items is irrelevant.
func (s *Scorer) Support(items []int) float64 {
	key := itemsetKey(items)
	if v, ok := s.memo.Get(key); ok {
		return v.(float64)
	}
	v := s.index.support(s.table, items)
	s.memo.Set(key, v)
	return v
}

// Confidence is Confidence on the scorer's table (not memoized: it depends
// on the split, not only on the itemset).
func (s *Scorer) Confidence(ante, cons []int) float64 {
	return s.index.confidence(s.table, ante, cons)
}

// Score computes support of the whole itemset, confidence and CF.
func (s *Scorer) Score(c itemset.Candidate) Score {
	conf := s.Confidence(c.Antecedent, c.Consequent)
	return Score{
		Support:         s.Support(c.Items()),
		Confidence:      conf,
		CertaintyFactor: CertaintyFactor(conf, s.Support(c.Consequent)),
	}
}

// itemsetKey renders sorted indices as "i,j,k".
func itemsetKey(items []int) string {
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	var b strings.Builder
	for n, i := range sorted {
		if n > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}
