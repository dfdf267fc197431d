// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph

package rulegraph

// NodeStyle is a rendering hint for visualizers.
type NodeStyle struct {
	Shape string `json:"shape"`
	Color string `json:"color"`
}

// Style returns the drawing hint for a node type.
func Style(nodeType string) NodeStyle {
	switch nodeType {
	case TypeItem:
		return NodeStyle{Shape: "circle", Color: "skyblue"}
	case TypeRule:
		return NodeStyle{Shape: "square", Color: "salmon"}
	default:
		return NodeStyle{Shape: "circle", Color: "lightgray"}
	}
}
