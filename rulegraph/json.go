// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph
//
// json.go — node-link JSON encoding.

package rulegraph

import (
	"encoding/json"
	"fmt"
	"io"
)

type wireGraph struct {
	Directed   bool           `json:"directed"`
	Multigraph bool           `json:"multigraph"`
	Graph      map[string]any `json:"graph"`
	Nodes      []wireNode     `json:"nodes"`
	Links      []wireEdge     `json:"links"`
	Edges      []wireEdge     `json:"edges"`
}

type wireNode struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Label           string   `json:"label,omitempty"`
	Support         *float64 `json:"support,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	CertaintyFactor *float64 `json:"certainty_factor,omitempty"`
}

type wireEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Role   string `json:"role"`
}

// MarshalJSON renders g in node-link form. Nodes are sorted by ID and links
// follow insertion order. The edge list is written under both "links" (the
// networkx key) and "edges".
func (g *Graph) MarshalJSON() ([]byte, error) {
	w := wireGraph{Directed: true, Graph: map[string]any{}}
	for _, n := range g.Nodes() {
		wn := wireNode{ID: n.ID, Type: n.Type, Label: n.Label}
		if st := n.Stats; st != nil {
			wn.Support, wn.Confidence, wn.CertaintyFactor = &st.Support, &st.Confidence, &st.CertaintyFactor
		}
		w.Nodes = append(w.Nodes, wn)
	}
	w.Links = []wireEdge{}
	for _, e := range g.Edges() {
		w.Links = append(w.Links, wireEdge{Source: e.From, Target: e.To, Role: e.Role})
	}
	w.Edges = w.Links
	if w.Nodes == nil {
		w.Nodes = []wireNode{}
	}
	return json.Marshal(w)
}

// WriteJSON writes g to w as indented node-link JSON.
func (g *Graph) WriteJSON(w io.Writer) error {
	data, err := g.MarshalJSON()
	if err != nil {
		return err
	}
	var v json.RawMessage = data
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ReadJSON parses a node-link document. Links are re-added in document order;
// "edges" is read only when "links" is absent or empty.
func ReadJSON(r io.Reader) (*Graph, error) {
	var w wireGraph
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("ReadJSON: %w", err)
	}

	g := NewGraph()
	for _, wn := range w.Nodes {
		n := Node{ID: wn.ID, Type: wn.Type, Label: wn.Label}
		if wn.Type == TypeRule {
			n.Stats = &RuleStats{
				Support:         deref(wn.Support),
				Confidence:      deref(wn.Confidence),
				CertaintyFactor: deref(wn.CertaintyFactor),
			}
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("ReadJSON: %w", err)
		}
	}

	links := w.Links
	if len(links) == 0 {
		links = w.Edges
	}
	for _, we := range links {
		if _, err := g.AddEdge(we.Source, we.Target, we.Role); err != nil {
			return nil, fmt.Errorf("ReadJSON: %w", err)
		}
	}
	return g, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
