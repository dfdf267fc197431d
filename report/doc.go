// SPDX-License-Identifier: MIT

// Package report formats mined rules for people: a tabular rendering in
// several output formats, a numbered top-N listing and a statistics summary.
//
// Every function ranks its own copy of the input by certainty factor
// (descending, stable), so callers may pass rules in any order.
package report
