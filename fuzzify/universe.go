// SPDX-License-Identifier: MIT
// Package: fuzzar/fuzzify
//
// universe.go — FuzzyItem and the ordered item universe.

package fuzzify

import (
	"fmt"

	"github.com/katalvlaran/fuzzar/config"
)

// Item is one linguistic term: a (variable, label) pair.
type Item struct {
	Variable string `json:"variable" msgpack:"variable"`
	Label    string `json:"label" msgpack:"label"`
}

// String renders the item as A='High'.
func (it Item) String() string {
	return fmt.Sprintf("%s='%s'", it.Variable, it.Label)
}

// Universe is the fixed, ordered list of items derived from a Config.
type Universe struct {
	items    []Item
	varOf    []int // item index → variable index
	varNames []string
	index    map[Item]int
}

// NewUniverse lays out the items of cfg in declaration order. cfg is assumed
// to have passed config.Check.
func NewUniverse(cfg config.Config) *Universe {
	u := &Universe{
		varNames: cfg.VariableNames(),
		index:    make(map[Item]int),
	}
	for vi, v := range cfg.Variables {
		for _, s := range v.Sets {
			it := Item{Variable: v.Name, Label: s.Label}
			u.index[it] = len(u.items)
			u.items = append(u.items, it)
			u.varOf = append(u.varOf, vi)
		}
	}
	return u
}

// Len returns the number of items.
func (u *Universe) Len() int { return len(u.items) }

// Item returns item i.
func (u *Universe) Item(i int) Item { return u.items[i] }

// Items resolves a list of indices to items.
func (u *Universe) Items(idx []int) []Item {
	out := make([]Item, len(idx))
	for k, i := range idx {
		out[k] = u.items[i]
	}
	return out
}

// VarOf returns the variable index of item i.
func (u *Universe) VarOf(i int) int { return u.varOf[i] }

// Variables returns the number of variables.
func (u *Universe) Variables() int { return len(u.varNames) }

// VariableName returns the name of variable vi.
func (u *Universe) VariableName(vi int) string { return u.varNames[vi] }

// Index returns the index of it, or -1.
func (u *Universe) Index(it Item) int {
	i, ok := u.index[it]
	if !ok {
		return -1
	}
	return i
}
