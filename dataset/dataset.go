// SPDX-License-Identifier: MIT
// Package: fuzzar/dataset
//
// dataset.go — Dataset type, constructors and read-only queries.
//
// Determinism:
//   • Columns() returns names in construction order.
//   • FromRows orders columns lexicographically (maps carry no order).

package dataset

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Sentinel errors for dataset construction and lookup.
var (
	ErrEmptyDataset    = errors.New("dataset: no rows")
	ErrUnknownColumn   = errors.New("dataset: unknown column")
	ErrRaggedData      = errors.New("dataset: ragged data")
	ErrDuplicateColumn = errors.New("dataset: duplicate column")
	ErrParse           = errors.New("dataset: parse error")
	ErrNonFinite       = errors.New("dataset: non-finite value")
)

// Dataset is an immutable row-major numeric table.
type Dataset struct {
	names []string
	index map[string]int // column name → position in names
	cells []float64      // len(cells) == rows*len(names)
	rows  int
}

// New builds a Dataset from column names and row-major values.
// Every row must have exactly len(names) cells. The input slices are copied.
func New(names []string, rows [][]float64) (*Dataset, error) {
	ds, err := newHeader(names)
	if err != nil {
		return nil, err
	}
	width := len(names)
	ds.cells = make([]float64, 0, len(rows)*width)
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("New: row %d has %d cells, want %d: %w", r, len(row), width, ErrRaggedData)
		}
		ds.cells = append(ds.cells, row...)
	}
	ds.rows = len(rows)

	return ds, nil
}

// FromRows builds a Dataset from a sequence of name→value records, the shape
// used at the mining boundary. All records must carry the same key set.
// Columns are ordered lexicographically.
func FromRows(records []map[string]float64) (*Dataset, error) {
	if len(records) == 0 {
		return newHeader(nil)
	}
	names := maps.Keys(records[0])
	slices.Sort(names)

	rows := make([][]float64, len(records))
	for r, rec := range records {
		if len(rec) != len(names) {
			return nil, fmt.Errorf("FromRows: record %d has %d fields, want %d: %w", r, len(rec), len(names), ErrRaggedData)
		}
		row := make([]float64, len(names))
		for c, name := range names {
			v, ok := rec[name]
			if !ok {
				return nil, fmt.Errorf("FromRows: record %d lacks %q: %w", r, name, ErrRaggedData)
			}
			row[c] = v
		}
		rows[r] = row
	}

	return New(names, rows)
}

// FromColumns builds a Dataset from named columns of equal length, keeping the
// order given by names.
func FromColumns(names []string, cols map[string][]float64) (*Dataset, error) {
	ds, err := newHeader(names)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return ds, nil
	}
	n := -1
	for _, name := range names {
		col, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("FromColumns: %q: %w", name, ErrUnknownColumn)
		}
		if n >= 0 && len(col) != n {
			return nil, fmt.Errorf("FromColumns: column %q has %d values, want %d: %w", name, len(col), n, ErrRaggedData)
		}
		n = len(col)
	}

	width := len(names)
	ds.rows = n
	ds.cells = make([]float64, n*width)
	for c, name := range names {
		for r, v := range cols[name] {
			ds.cells[r*width+c] = v
		}
	}

	return ds, nil
}

// newHeader validates names and prepares an empty Dataset.
func newHeader(names []string) (*Dataset, error) {
	ds := &Dataset{
		names: slices.Clone(names),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, dup := ds.index[name]; dup {
			return nil, fmt.Errorf("column %q: %w", name, ErrDuplicateColumn)
		}
		ds.index[name] = i
	}

	return ds, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Columns returns a copy of the column names in order.
func (d *Dataset) Columns() []string { return slices.Clone(d.names) }

// Has reports whether the column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ColumnIndex returns the position of name, or ErrUnknownColumn.
func (d *Dataset) ColumnIndex(name string) (int, error) {
	c, ok := d.index[name]
	if !ok {
		return -1, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
	}
	return c, nil
}

// Column returns a copy of the named column.
func (d *Dataset) Column(name string) ([]float64, error) {
	c, err := d.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, d.rows)
	width := len(d.names)
	for r := range out {
		out[r] = d.cells[r*width+c]
	}
	return out, nil
}

// At returns the value at (row, column index). It panics on out-of-range
// indices like a slice access.
func (d *Dataset) At(row, col int) float64 {
	return d.cells[row*len(d.names)+col]
}

// Value returns the value at row for the named column.
func (d *Dataset) Value(row int, name string) (float64, error) {
	c, err := d.ColumnIndex(name)
	if err != nil {
		return 0, err
	}
	if row < 0 || row >= d.rows {
		return 0, fmt.Errorf("Value: row %d out of range [0,%d)", row, d.rows)
	}
	return d.At(row, c), nil
}

// CheckFinite returns ErrNonFinite if any of the named columns holds NaN or ±Inf.
func (d *Dataset) CheckFinite(names ...string) error {
	width := len(d.names)
	for _, name := range names {
		c, err := d.ColumnIndex(name)
		if err != nil {
			return err
		}
		for r := 0; r < d.rows; r++ {
			v := d.cells[r*width+c]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("column %q row %d = %g: %w", name, r, v, ErrNonFinite)
			}
		}
	}
	return nil
}
