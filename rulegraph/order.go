// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph
//
// order.go — topological order of the rule graph.
//
// A rule set is acyclic when no item can be derived, directly or through
// other rules, from itself. AllPartitions mining routinely produces both
// A ⇒ B and B ⇒ A, which is a cycle of length two (item→rule→item→rule).

package rulegraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is returned by TopologicalOrder when the rules derive an item
// from itself.
var ErrCycle = errors.New("rulegraph: cyclic rule set")

const (
	white = iota
	gray
	black
)

type topoSorter struct {
	graph *Graph
	state map[string]int
	stack []string
	order []string
}

// TopologicalOrder returns all node IDs such that every edge goes forward.
// Ties are broken by node ID, so the order is deterministic.
//
// Errors: ErrCycle, with the offending cycle in the message.
//
// Complexity: O(V + E) plus neighbor sorting.
func TopologicalOrder(g *Graph) ([]string, error) {
	nodes := g.Nodes()
	t := &topoSorter{
		graph: g,
		state: make(map[string]int, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}
	// visit in reverse ID order so the reversed post-order favors small IDs
	for i := len(nodes) - 1; i >= 0; i-- {
		if t.state[nodes[i].ID] == white {
			if err := t.visit(nodes[i].ID); err != nil {
				return nil, err
			}
		}
	}
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}
	return t.order, nil
}

func (t *topoSorter) visit(id string) error {
	t.state[id] = gray
	t.stack = append(t.stack, id)

	next, err := t.graph.Successors(id)
	if err != nil {
		return err
	}
	for i := len(next) - 1; i >= 0; i-- {
		nb := next[i]
		switch t.state[nb] {
		case gray:
			return fmt.Errorf("%w: %s", ErrCycle, t.cycleFrom(nb))
		case white:
			if err := t.visit(nb); err != nil {
				return err
			}
		}
	}

	t.stack = t.stack[:len(t.stack)-1]
	t.state[id] = black
	t.order = append(t.order, id)
	return nil
}

// cycleFrom renders the stack suffix starting at id, closed back on id.
func (t *topoSorter) cycleFrom(id string) string {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == id {
			cyc := append(append([]string{}, t.stack[i:]...), id)
			return strings.Join(cyc, " → ")
		}
	}
	return id
}
