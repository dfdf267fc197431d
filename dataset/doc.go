// SPDX-License-Identifier: MIT

// Package dataset holds the numeric table the miner reads from.
//
// A Dataset is an ordered list of named numeric columns and an ordered list of
// rows. It is immutable once built: the fuzzifier and every later stage only
// read it. Constructors validate shape (rectangular, unique column names) and
// report problems with the sentinel errors below; callers branch with
// errors.Is.
//
// Errors:
//
//	ErrEmptyDataset    - the dataset has no rows (mining refuses it).
//	ErrUnknownColumn   - a referenced column does not exist.
//	ErrRaggedData      - rows/columns of unequal length.
//	ErrDuplicateColumn - the same column name appears twice.
//	ErrParse           - a CSV cell is not a number.
//	ErrNonFinite       - NaN or ±Inf in a column that must be evaluated.
package dataset
