// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph
//
// types.go — Node, Edge, Graph, sentinel errors and the constructor.

package rulegraph

import (
	"errors"
	"sync"
)

// Sentinel errors for rule graph operations.
var (
	// ErrEmptyNodeID indicates that a node ID is the empty string.
	ErrEmptyNodeID = errors.New("rulegraph: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("rulegraph: node not found")

	// ErrNodeConflict indicates a node ID re-added with a different type.
	ErrNodeConflict = errors.New("rulegraph: node exists with another type")

	// ErrBadRole indicates an unknown role or a role whose endpoint types do
	// not match (antecedent is item→rule, consequent is rule→item).
	ErrBadRole = errors.New("rulegraph: bad edge role")

	// ErrDuplicateEdge indicates a second edge between the same ordered pair.
	ErrDuplicateEdge = errors.New("rulegraph: duplicate edge")
)

// Node types.
const (
	TypeItem = "item"
	TypeRule = "rule"
)

// Edge roles.
const (
	RoleAntecedent = "antecedent"
	RoleConsequent = "consequent"
)

// RuleStats are the statistics carried by a rule node.
type RuleStats struct {
	Support         float64
	Confidence      float64
	CertaintyFactor float64
}

// Node is a vertex of the rule graph. Stats is non-nil only for rule nodes.
type Node struct {
	ID    string
	Type  string
	Label string
	Stats *RuleStats
}

// Edge is a directed, role-tagged connection.
type Edge struct {
	ID   string
	From string
	To   string
	Role string

	seq uint64
}

// Graph is a directed item/rule graph.
//
// muNode protects nodes; muEdgeAdj protects edges, out and in.
type Graph struct {
	muNode    sync.RWMutex
	muEdgeAdj sync.RWMutex

	nextEdgeID uint64
	nodes      map[string]*Node
	edges      map[string]*Edge

	// out[from][to] and in[to][from] hold the edge ID.
	out map[string]map[string]string
	in  map[string]map[string]string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
		out:   make(map[string]map[string]string),
		in:    make(map[string]map[string]string),
	}
}
