// SPDX-License-Identifier: MIT
// Package: fuzzar/metrics
//
// metrics.go — fuzzy support, confidence and certainty factor.
//
// Edge cases (values, not errors):
//   • empty table            → support 0, confidence 0.
//   • empty itemset          → μ = 1 on every row (identity of min).
//   • Σ μ_A == 0             → confidence 0.
//   • support(C) >= 1        → CF 0.

package metrics

import "github.com/katalvlaran/fuzzar/fuzzify"

// Support returns the mean over rows of the min-aggregated degree of items.
//
// Complexity: O(rows × len(items)).
func Support(t *fuzzify.Table, items []int) float64 {
	rows := t.Rows()
	if rows == 0 {
		return 0
	}
	sum := 0.0
	for r := 0; r < rows; r++ {
		sum += minDegree(t.Row(r), items)
	}
	return sum / float64(rows)
}

// Confidence returns Σ min(μ_A, μ_C) / Σ μ_A, or 0 when Σ μ_A is 0.
//
// Complexity: O(rows × (len(ante)+len(cons))).
func Confidence(t *fuzzify.Table, ante, cons []int) float64 {
	num, den := 0.0, 0.0
	for r := 0; r < t.Rows(); r++ {
		row := t.Row(r)
		a := minDegree(row, ante)
		c := minDegree(row, cons)
		if c < a {
			num += c
		} else {
			num += a
		}
		den += a
	}
	if den > 0 {
		return num / den
	}
	return 0
}

// CertaintyFactor normalizes confidence against the consequent base rate.
func CertaintyFactor(confidence, consSupport float64) float64 {
	if consSupport < 1 {
		return (confidence - consSupport) / (1 - consSupport)
	}
	return 0
}

// CertaintyFactorOf computes confidence and consequent support from t.
func CertaintyFactorOf(t *fuzzify.Table, ante, cons []int) float64 {
	return CertaintyFactor(Confidence(t, ante, cons), Support(t, cons))
}

// minDegree is the min t-norm over the selected items of one row.
func minDegree(row []float64, items []int) float64 {
	m := 1.0
	for _, i := range items {
		if d := row[i]; d < m {
			m = d
		}
	}
	return m
}
