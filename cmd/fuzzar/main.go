// SPDX-License-Identifier: MIT

// Command fuzzar mines fuzzy association rules from a CSV file, or serves the
// miner over HTTP.
//
//	fuzzar -data data.csv -config fuzzy.yaml [-format text|markdown|csv|html|json]
//	       [-list] [-top N] [-partition prefix|all] [-workers N]
//	       [-where 'cf > 0.5'] [-graph rules.json] [-dot rules.dot]
//	       [-out rules.msgpack] [-v]
//	fuzzar -serve :8080 [-workers N] [-v]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/katalvlaran/fuzzar/config"
	"github.com/katalvlaran/fuzzar/dataset"
	"github.com/katalvlaran/fuzzar/itemset"
	"github.com/katalvlaran/fuzzar/miner"
	"github.com/katalvlaran/fuzzar/report"
	"github.com/katalvlaran/fuzzar/rulegraph"
	"github.com/katalvlaran/fuzzar/server"
)

type options struct {
	data      string
	config    string
	format    string
	list      bool
	top       int
	partition string
	workers   int
	where     string
	graph     string
	dot       string
	out       string
	serve     string
	verbose   bool
}

func main() {
	var o options
	flag.StringVar(&o.data, "data", "", "input CSV file (header row, numeric cells)")
	flag.StringVar(&o.config, "config", "", "YAML configuration file")
	flag.StringVar(&o.format, "format", "text", "table format: text, markdown, csv, html or json")
	flag.BoolVar(&o.list, "list", false, "print a numbered rule listing instead of a table")
	flag.IntVar(&o.top, "top", 0, "keep only the N best rules (0 = all)")
	flag.StringVar(&o.partition, "partition", "prefix", "rule split policy: prefix or all")
	flag.IntVar(&o.workers, "workers", 1, "scoring goroutines")
	flag.StringVar(&o.where, "where", "", "keep rules matching this expression, e.g. 'cf > 0.5 && length <= 3'")
	flag.StringVar(&o.graph, "graph", "", "write the rule graph as node-link JSON to this file")
	flag.StringVar(&o.dot, "dot", "", "write the rule graph as Graphviz DOT to this file")
	flag.StringVar(&o.out, "out", "", "write the rules as msgpack to this file")
	flag.StringVar(&o.serve, "serve", "", "serve the HTTP API on this address instead of mining once")
	flag.BoolVar(&o.verbose, "v", false, "verbose (development) logging")
	flag.Parse()

	log, err := newLogger(o.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fuzzar:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.serve != "" {
		s := server.New(server.WithLogger(log), server.WithWorkers(o.workers), server.WithSingleJob())
		if err := s.Run(ctx, o.serve); err != nil {
			log.Error("server failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if o.data == "" || o.config == "" {
		fmt.Fprintln(os.Stderr, "fuzzar: -data and -config are required (or use -serve)")
		flag.Usage()
		os.Exit(2)
	}
	if err := run(ctx, log, o); err != nil {
		log.Error("mining failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "fuzzar:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, log *zap.Logger, o options) error {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return err
	}
	policy, err := itemset.ParsePartitionPolicy(o.partition)
	if err != nil {
		return err
	}

	cfg, err := config.Load(o.config)
	if err != nil {
		return err
	}
	ds, err := dataset.LoadCSV(o.data)
	if err != nil {
		return err
	}
	log.Info("input loaded",
		zap.String("data", o.data),
		zap.Int("rows", ds.Len()),
		zap.Strings("variables", cfg.VariableNames()))

	rules, err := miner.Mine(ds, cfg,
		miner.WithContext(ctx),
		miner.WithLogger(log),
		miner.WithWorkers(o.workers),
		miner.WithPartitionPolicy(policy),
		miner.WithTopN(o.top),
		miner.WithFilter(o.where))
	if err != nil {
		return err
	}
	log.Info("rules mined", zap.Int("rules", len(rules)))

	if o.list {
		if err := report.PrintTop(os.Stdout, rules, len(rules)); err != nil {
			return err
		}
	} else if err := report.Render(os.Stdout, rules, format); err != nil {
		return err
	}
	if format == report.Text {
		fmt.Println()
		if err := report.WriteSummary(os.Stdout, miner.Summarize(rules)); err != nil {
			return err
		}
	}

	if o.graph != "" || o.dot != "" {
		g, err := rulegraph.FromRules(rules)
		if err != nil {
			return err
		}
		if o.graph != "" {
			if err := writeFile(o.graph, g.WriteJSON); err != nil {
				return err
			}
			log.Info("graph written", zap.String("path", o.graph))
		}
		if o.dot != "" {
			if err := writeFile(o.dot, g.WriteDOT); err != nil {
				return err
			}
			log.Info("dot written", zap.String("path", o.dot))
		}
	}
	if o.out != "" {
		encode := func(w io.Writer) error { return miner.EncodeRules(w, rules) }
		if err := writeFile(o.out, encode); err != nil {
			return err
		}
		log.Info("rules written", zap.String("path", o.out))
	}
	return nil
}

// writeFile creates path and hands it to write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
