// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph
//
// build.go — rule list → graph.

package rulegraph

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set"

	"github.com/katalvlaran/fuzzar/miner"
)

// RuleID returns the node ID of the i-th rule.
func RuleID(i int) string { return fmt.Sprintf("rule_%d", i) }

// FromRules builds the graph of rules. Item nodes are added first in ID
// order, then one rule node per rule in list order with its edges.
//
// Errors: ErrDuplicateEdge if a rule lists the same item twice on one side.
//
// Complexity: O(R·k + I log I) for R rules of length ≤ k over I distinct items.
func FromRules(rules []miner.Rule) (*Graph, error) {
	items := mapset.NewThreadUnsafeSet()
	for _, r := range rules {
		for _, it := range r.Antecedent {
			items.Add(it.String())
		}
		for _, it := range r.Consequent {
			items.Add(it.String())
		}
	}
	ids := make([]string, 0, items.Cardinality())
	for v := range items.Iter() {
		ids = append(ids, v.(string))
	}
	sort.Strings(ids)

	g := NewGraph()
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id, Type: TypeItem, Label: id}); err != nil {
			return nil, err
		}
	}

	for i, r := range rules {
		rid := RuleID(i)
		err := g.AddNode(Node{ID: rid, Type: TypeRule, Label: r.String(), Stats: &RuleStats{
			Support:         r.Support,
			Confidence:      r.Confidence,
			CertaintyFactor: r.CertaintyFactor,
		}})
		if err != nil {
			return nil, err
		}
		for _, it := range r.Antecedent {
			if _, err := g.AddEdge(it.String(), rid, RoleAntecedent); err != nil {
				return nil, fmt.Errorf("FromRules: rule %d: %w", i, err)
			}
		}
		for _, it := range r.Consequent {
			if _, err := g.AddEdge(rid, it.String(), RoleConsequent); err != nil {
				return nil, fmt.Errorf("FromRules: rule %d: %w", i, err)
			}
		}
	}

	return g, nil
}
