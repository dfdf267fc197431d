// SPDX-License-Identifier: MIT

// Package fuzzify turns a numeric dataset into a table of membership degrees.
//
// The item universe is the ordered list of every (variable, label) pair in the
// configuration: variables in declaration order, labels in declaration order
// inside each variable. An item is addressed by its integer index into that
// universe, and the degree table is a dense rows × items matrix:
//
//	          A=Low  A=Medium  A=High  B=Low  B=High
//	row 0     0.00     0.00     0.00   1.00    0.00
//	row 1     0.00     0.50     0.00   0.00    1.00
//	...
//
// Tables are immutable after Fuzzify returns and safe for concurrent reads.
//
// Complexity: Fuzzify is O(rows × items) time and memory.
package fuzzify
