// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph
//
// dot.go — Graphviz export.

package rulegraph

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// DOTName is the name given to the exported digraph.
const DOTName = "fuzzar"

// DOT renders g as a Graphviz digraph. Node shapes and colors follow Style;
// edges carry their role as label. Nodes are emitted in ID order and edges in
// insertion order.
func (g *Graph) DOT() (string, error) {
	out := gographviz.NewGraph()
	if err := out.SetName(DOTName); err != nil {
		return "", err
	}
	if err := out.SetDir(true); err != nil {
		return "", err
	}
	if err := out.AddAttr(DOTName, "rankdir", "LR"); err != nil {
		return "", err
	}

	for _, n := range g.Nodes() {
		st := Style(n.Type)
		attrs := map[string]string{
			"shape":     st.Shape,
			"fillcolor": st.Color,
			"style":     "filled",
			"label":     strconv.Quote(n.Label),
		}
		if n.Stats != nil {
			attrs["tooltip"] = strconv.Quote(fmt.Sprintf("support=%.3f confidence=%.3f cf=%.3f",
				n.Stats.Support, n.Stats.Confidence, n.Stats.CertaintyFactor))
		}
		if err := out.AddNode(DOTName, strconv.Quote(n.ID), attrs); err != nil {
			return "", fmt.Errorf("rulegraph: dot node %q: %w", n.ID, err)
		}
	}
	for _, e := range g.Edges() {
		attrs := map[string]string{"label": e.Role}
		if err := out.AddEdge(strconv.Quote(e.From), strconv.Quote(e.To), true, attrs); err != nil {
			return "", fmt.Errorf("rulegraph: dot edge %s: %w", e.ID, err)
		}
	}
	return out.String(), nil
}

// WriteDOT writes the DOT rendering of g to w.
func (g *Graph) WriteDOT(w io.Writer) error {
	s, err := g.DOT()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
