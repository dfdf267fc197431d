// SPDX-License-Identifier: MIT

// Package fuzzy evaluates triangular membership functions, the leaf primitive
// of the fuzzar pipeline.
//
// A triangular fuzzy set (label, a, b, c) with a ≤ b ≤ c rises linearly from
// 0 at a to 1 at b and falls back to 0 at c:
//
//	 1 ┤      ╱╲
//	   │     ╱  ╲
//	 0 ┼────╱────╲────
//	        a  b  c
//
// Degenerate shapes:
//   - a == b == c is a crisp indicator: 1 at x == a, 0 elsewhere.
//   - a == b (or b == c) has one degenerate half. Under the Strict policy
//     (the default) that half contributes 0, so the membership is 0 over the
//     whole left (right) side including the peak. Under the Shoulder policy it
//     contributes 1 and the set becomes a left (right) shoulder.
//
// Usage:
//
//	low := fuzzy.Set{Label: "Low", A: 0, B: 0, C: 20}
//	d := low.DegreeWith(fuzzy.Shoulder, 10) // 0.5
//
// Every function is pure; NaN inputs are not handled here (dataset validation
// rejects non-finite values before they reach the evaluator).
package fuzzy
