// Package fuzzar mines fuzzy association rules from numeric tables.
//
// 🚀 What is fuzzar?
//
//	A small, deterministic library that turns continuous columns into
//	linguistic terms ("temperature is High") and searches for rules such as
//
//		IF temperature is High AND humidity is Low THEN fan is High
//
//	qualified by fuzzy support and confidence and ranked by certainty factor.
//
// ✨ Pipeline
//
//	dataset ──▶ fuzzify ──▶ itemset ──▶ metrics ──▶ miner ──▶ report / rulegraph
//	 (CSV)     (degrees)   (candidates) (scores)   (ranked)   (tables, graphs)
//
// Packages:
//
//	fuzzy/     — triangular membership functions and edge policies
//	dataset/   — column-oriented numeric tables, CSV input
//	config/    — variables, fuzzy sets and thresholds (YAML or JSON) with validation
//	fuzzify/   — item universe and the row × item degree table
//	itemset/   — lazy, restartable candidate enumeration
//	metrics/   — support, confidence, certainty factor, memoizing indexed scorer
//	miner/     — the Mine pipeline, ranking, filters, summaries, msgpack persistence
//	report/    — go-pretty tables, numbered listings, summaries
//	rulegraph/ — item/rule graph, node-link JSON, DOT, forward chaining
//	server/    — gin HTTP API
//	cmd/fuzzar — command-line entry point
//
// Quick start:
//
//	cfg, _ := config.Load("fuzzy.yaml")
//	ds, _ := dataset.LoadCSV("data.csv")
//	rules, _ := miner.Mine(ds, cfg)
//	_ = report.PrintTop(os.Stdout, rules, 10)
//
//	go install github.com/katalvlaran/fuzzar/cmd/fuzzar@latest
package fuzzar
