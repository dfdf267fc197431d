// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph
//
// graph.go — node and edge lifecycle and queries.
//
// Determinism:
//   - Nodes(), Successors(), Predecessors() are sorted by node ID.
//   - Edges() is sorted by insertion order ("e1", "e2", ...).

package rulegraph

import (
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
)

// AddNode registers n. Re-adding an ID with the same type is a no-op that
// keeps the first node; a different type is ErrNodeConflict.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}

	g.muNode.Lock()
	defer g.muNode.Unlock()

	if old, ok := g.nodes[n.ID]; ok {
		if old.Type != n.Type {
			return fmt.Errorf("AddNode: %q is %q, not %q: %w", n.ID, old.Type, n.Type, ErrNodeConflict)
		}
		return nil
	}
	if n.Stats != nil {
		st := *n.Stats
		n.Stats = &st
	}
	g.nodes[n.ID] = &n

	return nil
}

// HasNode reports whether id exists.
func (g *Graph) HasNode(id string) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("Node: %q: %w", id, ErrNodeNotFound)
	}
	return copyNode(n), nil
}

// Nodes returns copies of all nodes sorted by ID.
func (g *Graph) Nodes() []Node {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, copyNode(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodesOfType returns the nodes of type typ sorted by ID.
func (g *Graph) NodesOfType(typ string) []Node {
	all := g.Nodes()
	out := all[:0]
	for _, n := range all {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	return len(g.nodes)
}

// AddEdge links from→to with role and returns the new edge ID.
//
// Errors:
//   - ErrEmptyNodeID, ErrNodeNotFound for bad endpoints.
//   - ErrBadRole if role is unknown or the endpoint types do not fit it.
//   - ErrDuplicateEdge if from→to already exists.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to, role string) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyNodeID
	}

	// lock order: muNode then muEdgeAdj
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	src, ok := g.nodes[from]
	if !ok {
		return "", fmt.Errorf("AddEdge: source %q: %w", from, ErrNodeNotFound)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return "", fmt.Errorf("AddEdge: target %q: %w", to, ErrNodeNotFound)
	}
	if err := checkRole(role, src.Type, dst.Type); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, dup := g.out[from][to]; dup {
		return "", fmt.Errorf("AddEdge: %q→%q: %w", from, to, ErrDuplicateEdge)
	}

	seq := atomic.AddUint64(&g.nextEdgeID, 1)
	e := &Edge{ID: "e" + strconv.FormatUint(seq, 10), From: from, To: to, Role: role, seq: seq}
	g.edges[e.ID] = e
	link(g.out, from, to, e.ID)
	link(g.in, to, from, e.ID)

	return e.ID, nil
}

// Edges returns copies of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	return len(g.edges)
}

// Successors returns the targets of id's outgoing edges, sorted.
func (g *Graph) Successors(id string) ([]string, error) {
	return g.neighbors(id, g.out)
}

// Predecessors returns the sources of id's incoming edges, sorted.
func (g *Graph) Predecessors(id string) ([]string, error) {
	return g.neighbors(id, g.in)
}

func (g *Graph) neighbors(id string, adj map[string]map[string]string) ([]string, error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("%q: %w", id, ErrNodeNotFound)
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]string, 0, len(adj[id]))
	for nb := range adj[id] {
		out = append(out, nb)
	}
	sort.Strings(out)
	return out, nil
}

func checkRole(role, fromType, toType string) error {
	switch role {
	case RoleAntecedent:
		if fromType == TypeItem && toType == TypeRule {
			return nil
		}
	case RoleConsequent:
		if fromType == TypeRule && toType == TypeItem {
			return nil
		}
	default:
		return fmt.Errorf("AddEdge: unknown role %q: %w", role, ErrBadRole)
	}
	return fmt.Errorf("AddEdge: role %q cannot link %s→%s: %w", role, fromType, toType, ErrBadRole)
}

func link(adj map[string]map[string]string, a, b, eid string) {
	inner, ok := adj[a]
	if !ok {
		inner = make(map[string]string)
		adj[a] = inner
	}
	inner[b] = eid
}

func copyNode(n *Node) Node {
	c := *n
	if n.Stats != nil {
		st := *n.Stats
		c.Stats = &st
	}
	return c
}
