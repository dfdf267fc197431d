// SPDX-License-Identifier: MIT

// Package miner turns a dataset and a configuration into a ranked list of
// fuzzy association rules.
//
// Pipeline (one call, no retained state):
//
//  1. validate the configuration against the dataset; every error is reported
//     before any fuzzification happens,
//  2. fuzzify every configured column into a degree table,
//  3. enumerate candidate (antecedent, consequent) splits,
//  4. score each candidate: support of the whole itemset and confidence,
//  5. accept iff support ≥ min_support and confidence ≥ min_confidence,
//  6. attach the certainty factor to accepted rules,
//  7. rank by certainty factor, descending; ties keep enumeration order.
//
// A combination whose itemset support is below min_support cannot produce an
// accepted rule under any split, so its remaining splits are skipped.
//
// Mine is deterministic: the same inputs give the same list in the same order,
// whatever the worker count. The result is either the complete list or an
// error, never a prefix.
//
// Options:
//
//	WithWorkers(n)           – score candidates on n goroutines (n ≥ 1).
//	WithContext(ctx)         – abort between candidates when ctx is done.
//	WithLogger(l)            – zap logger for Debug progress; silent by default.
//	WithPartitionPolicy(p)   – itemset.PrefixSplit (default) or AllPartitions.
//	WithFilter(expr)         – drop rules not matching a govaluate expression
//	                           such as "cf > 0.5 && length <= 3"; applied
//	                           after ranking, before TopN.
//	WithTopN(n)              – keep only the n best rules (0 = all).
//	WithOnRule(fn)           – called once per returned rule, in final order.
//
// Example:
//
//	cfg, _ := config.Load("fuzzy.yaml")
//	ds, _ := dataset.LoadCSV("data.csv")
//	rules, err := miner.Mine(ds, cfg, miner.WithWorkers(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range rules {
//		fmt.Println(r)
//	}
package miner
