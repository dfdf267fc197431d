// SPDX-License-Identifier: MIT
// Package: fuzzar/fuzzify
//
// table.go — the degree table and the Fuzzify transform.
//
// Contract:
//   • Config is validated against the dataset before any degree is computed.
//   • Row r of the table corresponds to row r of the dataset.
//   • The dataset is never mutated.

package fuzzify

import (
	"fmt"

	"github.com/katalvlaran/fuzzar/config"
	"github.com/katalvlaran/fuzzar/dataset"
	"github.com/katalvlaran/fuzzar/fuzzy"
)

// Table is an immutable rows × items matrix of membership degrees.
type Table struct {
	universe *Universe
	rows     int
	width    int
	degrees  []float64 // row-major, len == rows*width
}

// Fuzzify validates cfg against ds and evaluates every configured fuzzy set on
// every row.
//
// Errors: whatever cfg.Validate reports (config.ErrConfiguration family,
// dataset.ErrEmptyDataset, dataset.ErrNonFinite).
//
// Complexity: O(rows × items).
func Fuzzify(ds *dataset.Dataset, cfg config.Config) (*Table, error) {
	if err := cfg.Validate(ds); err != nil {
		return nil, fmt.Errorf("Fuzzify: %w", err)
	}

	u := NewUniverse(cfg)
	t := &Table{
		universe: u,
		rows:     ds.Len(),
		width:    u.Len(),
	}
	t.degrees = make([]float64, t.rows*t.width)

	// Resolve column positions once; the inner loop is then index arithmetic.
	cols := make([]int, len(cfg.Variables))
	for vi, v := range cfg.Variables {
		c, err := ds.ColumnIndex(v.Name)
		if err != nil {
			return nil, fmt.Errorf("Fuzzify: %w", err)
		}
		cols[vi] = c
	}
	sets := make([]fuzzy.Set, 0, t.width)
	for _, v := range cfg.Variables {
		sets = append(sets, v.Sets...)
	}

	for r := 0; r < t.rows; r++ {
		row := t.degrees[r*t.width : (r+1)*t.width]
		for i, s := range sets {
			row[i] = s.DegreeWith(cfg.EdgePolicy, ds.At(r, cols[u.varOf[i]]))
		}
	}

	return t, nil
}

// NewTable builds a Table from precomputed degrees, one slice per row in
// universe order. It is meant for callers that fuzzify elsewhere and for tests.
func NewTable(u *Universe, rows [][]float64) (*Table, error) {
	t := &Table{universe: u, rows: len(rows), width: u.Len()}
	t.degrees = make([]float64, 0, t.rows*t.width)
	for r, row := range rows {
		if len(row) != t.width {
			return nil, fmt.Errorf("NewTable: row %d has %d degrees, want %d: %w", r, len(row), t.width, dataset.ErrRaggedData)
		}
		for i, d := range row {
			if d < 0 || d > 1 {
				return nil, fmt.Errorf("NewTable: row %d item %s degree %g outside [0,1]", r, u.Item(i), d)
			}
		}
		t.degrees = append(t.degrees, row...)
	}
	return t, nil
}

// Universe returns the item universe of the table.
func (t *Table) Universe() *Universe { return t.universe }

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Degree returns the membership of row r in item i.
func (t *Table) Degree(r, i int) float64 { return t.degrees[r*t.width+i] }

// Row returns row r as a read-only view. Callers must not modify it.
func (t *Table) Row(r int) []float64 { return t.degrees[r*t.width : (r+1)*t.width : (r+1)*t.width] }

// Lookup returns the degree of row r for (variable, label).
func (t *Table) Lookup(r int, variable, label string) (float64, bool) {
	i := t.universe.Index(Item{Variable: variable, Label: label})
	if i < 0 || r < 0 || r >= t.rows {
		return 0, false
	}
	return t.Degree(r, i), true
}
