// SPDX-License-Identifier: MIT

// Package rulegraph exports a mined rule list as a directed bipartite graph
// for external visualizers.
//
// Nodes come in two types:
//
//	item  – one per distinct fuzzy item, ID and label "A='High'"
//	rule  – one per rule, ID "rule_<i>" in list order, carrying support,
//	        confidence and certainty factor
//
// Edges connect them by role:
//
//	item ──antecedent──▶ rule ──consequent──▶ item
//
// so Successors of an item are the rules it triggers and Predecessors of an
// item are the rules that conclude it.
//
// The JSON form is the node-link layout understood by common graph tools:
//
//	{"directed":true,"multigraph":false,"graph":{},
//	 "nodes":[{"id":"A='High'","type":"item","label":"A='High'"}, ...],
//	 "links":[{"source":"A='High'","target":"rule_0","role":"antecedent"}, ...],
//	 "edges":[... same list ...]}
//
// The edge list appears under both keys so that networkx and plain
// {"nodes","edges"} readers load it. ReadJSON prefers "links" and falls back
// to "edges". DOT renders the same
// graph for Graphviz, styled by Style.
//
// Queries beyond adjacency:
//
//	Infer(g, facts, opts...)  – forward chaining: a rule fires once all its
//	                            antecedent items are known; breadth-first by
//	                            round, with Explain for the rules behind an item.
//	TopologicalOrder(g)       – items before the rules they feed; ErrCycle when
//	                            the rule set derives an item from itself.
//
// Graph is safe for concurrent use: the node catalog and the edge/adjacency
// maps are guarded by separate RWMutexes, always taken in that order.
// All enumerations are sorted, so output is reproducible.
package rulegraph
