// SPDX-License-Identifier: MIT
// Package: fuzzar/itemset
//
// enumerator.go — lazy, restartable candidate generator.
//
// State machine:
//   idx == nil        → not started for the current length k.
//   have == true      → idx is a valid combination; split/mask progress in `split`.
//   done == true      → exhausted; only Reset revives it.
//
// Duplicate-variable pruning: when position p of a combination repeats a
// variable already used at positions < p, every combination sharing idx[:p+1]
// is invalid too, so positions > p jump to their maximum and the next
// increment happens at p or earlier. Skipped combinations would all have been
// rejected, so the emitted order is exactly the filtered lexicographic order.

package itemset

import "fmt"

// Enumerator yields Candidates in deterministic order. Not safe for concurrent use.
type Enumerator struct {
	n      int
	varOf  []int
	labels []int // labels per variable index, for Count
	maxLen int
	policy PartitionPolicy

	k     int
	idx   []int
	have  bool
	split uint64
	seq   int
	done  bool
}

// New builds an Enumerator over u.
//
// Errors: ErrOptionViolation for invalid options, or when AllPartitions is
// combined with an itemset length above 62.
//
// Complexity: O(u.Len()) setup.
func New(u Universe, opts ...Option) (*Enumerator, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	e := &Enumerator{n: u.Len(), policy: o.Policy}
	e.varOf = make([]int, e.n)
	for i := 0; i < e.n; i++ {
		vi := u.VarOf(i)
		if vi < 0 {
			return nil, fmt.Errorf("%w: item %d has negative variable index %d", ErrOptionViolation, i, vi)
		}
		e.varOf[i] = vi
		for len(e.labels) <= vi {
			e.labels = append(e.labels, 0)
		}
		e.labels[vi]++
	}

	nVars := 0
	for _, l := range e.labels {
		if l > 0 {
			nVars++
		}
	}
	e.maxLen = o.MaxLength
	if e.maxLen == 0 || e.maxLen > nVars {
		// No valid itemset is longer than the number of distinct variables.
		e.maxLen = nVars
	}
	if e.policy == AllPartitions && e.maxLen > maxAllPartitionsLength {
		return nil, fmt.Errorf("%w: AllPartitions supports length <= %d, got %d", ErrOptionViolation, maxAllPartitionsLength, e.maxLen)
	}

	e.Reset()
	return e, nil
}

// Collect enumerates every candidate of u into a slice.
func Collect(u Universe, opts ...Option) ([]Candidate, error) {
	e, err := New(u, opts...)
	if err != nil {
		return nil, err
	}
	var out []Candidate
	for c, ok := e.Next(); ok; c, ok = e.Next() {
		out = append(out, c)
	}
	return out, nil
}

// MaxLength returns the effective maximum itemset length.
func (e *Enumerator) MaxLength() int { return e.maxLen }

// Policy returns the partition policy.
func (e *Enumerator) Policy() PartitionPolicy { return e.policy }

// Reset rewinds the enumerator to the first candidate.
func (e *Enumerator) Reset() {
	e.k = 2
	e.idx = nil
	e.have = false
	e.split = 0
	e.seq = 0
	e.done = e.maxLen < 2 || e.n < 2
}

// Next returns the next candidate, or false when exhausted.
// Returned slices are freshly allocated and owned by the caller.
func (e *Enumerator) Next() (Candidate, bool) {
	for {
		if e.have {
			if c, ok := e.nextSplit(); ok {
				return c, true
			}
			e.have = false
		}
		if !e.advance() {
			return Candidate{}, false
		}
		e.have = true
		e.split = 0
	}
}

// SkipCombination drops the remaining splits of the current combination.
// Use it when the whole itemset is known to fail (e.g. its support is below
// the threshold, which is identical for every split).
func (e *Enumerator) SkipCombination() { e.have = false }

// Combination returns a copy of the current combination, or nil before the
// first Next or after exhaustion.
func (e *Enumerator) Combination() []int {
	if !e.have {
		return nil
	}
	return append([]int(nil), e.idx...)
}

// Count returns the exact number of candidates without enumerating them.
//
// Complexity: O(variables × MaxLength).
func (e *Enumerator) Count() int {
	// esp[k] = elementary symmetric polynomial e_k over the label counts.
	esp := make([]int, e.maxLen+1)
	esp[0] = 1
	for _, l := range e.labels {
		if l == 0 {
			continue
		}
		for k := e.maxLen; k >= 1; k-- {
			esp[k] += esp[k-1] * l
		}
	}

	total := 0
	for k := 2; k <= e.maxLen; k++ {
		if e.policy == AllPartitions {
			total += esp[k] * (1<<uint(k) - 2)
		} else {
			total += esp[k] * (k - 1)
		}
	}
	return total
}

// nextSplit emits the next split of the current combination.
func (e *Enumerator) nextSplit() (Candidate, bool) {
	k := uint64(e.k)
	switch e.policy {
	case AllPartitions:
		if e.split >= (1<<k)-2 {
			return Candidate{}, false
		}
		e.split++
		ante := make([]int, 0, e.k)
		cons := make([]int, 0, e.k)
		for j := 0; j < e.k; j++ {
			if e.split&(1<<uint(j)) != 0 {
				ante = append(ante, e.idx[j])
			} else {
				cons = append(cons, e.idx[j])
			}
		}
		return e.emit(ante, cons), true
	default:
		if e.split >= k-1 {
			return Candidate{}, false
		}
		e.split++
		s := int(e.split)
		ante := append([]int(nil), e.idx[:s]...)
		cons := append([]int(nil), e.idx[s:]...)
		return e.emit(ante, cons), true
	}
}

func (e *Enumerator) emit(ante, cons []int) Candidate {
	c := Candidate{Antecedent: ante, Consequent: cons, Seq: e.seq}
	e.seq++
	return c
}

// advance moves idx to the next combination without repeated variables.
func (e *Enumerator) advance() bool {
	for !e.done {
		switch {
		case e.idx == nil:
			e.firstCombination()
		case !e.nextCombination():
			e.k++
			if e.k > e.maxLen || e.k > e.n {
				e.done = true
				e.idx = nil
				return false
			}
			e.firstCombination()
		}

		if p := e.conflict(); p >= 0 {
			for j := p + 1; j < e.k; j++ {
				e.idx[j] = e.n - e.k + j
			}
			continue
		}
		return true
	}
	return false
}

// firstCombination sets idx to 0..k-1.
func (e *Enumerator) firstCombination() {
	e.idx = make([]int, e.k)
	for j := range e.idx {
		e.idx[j] = j
	}
}

// nextCombination advances idx lexicographically; false when k is exhausted.
func (e *Enumerator) nextCombination() bool {
	i := e.k - 1
	for i >= 0 && e.idx[i] == e.n-e.k+i {
		i--
	}
	if i < 0 {
		return false
	}
	e.idx[i]++
	for j := i + 1; j < e.k; j++ {
		e.idx[j] = e.idx[j-1] + 1
	}
	return true
}

// conflict returns the first position whose variable already appears
// earlier in idx, or -1.
func (e *Enumerator) conflict() int {
	for p := 1; p < e.k; p++ {
		vp := e.varOf[e.idx[p]]
		for q := 0; q < p; q++ {
			if e.varOf[e.idx[q]] == vp {
				return p
			}
		}
	}
	return -1
}
