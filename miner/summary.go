// SPDX-License-Identifier: MIT
// Package: fuzzar/miner
//
// summary.go — aggregate statistics over a rule list.

package miner

// Summary aggregates the statistics of a rule list. All fields are zero for
// an empty list.
type Summary struct {
	Count               int     `json:"count"`
	SupportMean         float64 `json:"support_mean"`
	SupportMin          float64 `json:"support_min"`
	SupportMax          float64 `json:"support_max"`
	ConfidenceMean      float64 `json:"confidence_mean"`
	ConfidenceMin       float64 `json:"confidence_min"`
	ConfidenceMax       float64 `json:"confidence_max"`
	CertaintyFactorMean float64 `json:"certainty_factor_mean"`
}

// Summarize computes count, mean/min/max of support and confidence, and the
// mean certainty factor.
func Summarize(rules []Rule) Summary {
	s := Summary{Count: len(rules)}
	if len(rules) == 0 {
		return s
	}

	s.SupportMin, s.SupportMax = rules[0].Support, rules[0].Support
	s.ConfidenceMin, s.ConfidenceMax = rules[0].Confidence, rules[0].Confidence
	for _, r := range rules {
		s.SupportMean += r.Support
		s.ConfidenceMean += r.Confidence
		s.CertaintyFactorMean += r.CertaintyFactor
		s.SupportMin = min(s.SupportMin, r.Support)
		s.SupportMax = max(s.SupportMax, r.Support)
		s.ConfidenceMin = min(s.ConfidenceMin, r.Confidence)
		s.ConfidenceMax = max(s.ConfidenceMax, r.Confidence)
	}
	n := float64(len(rules))
	s.SupportMean /= n
	s.ConfidenceMean /= n
	s.CertaintyFactorMean /= n
	return s
}
