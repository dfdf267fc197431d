// SPDX-License-Identifier: MIT
// Package: fuzzar/miner
//
// miner.go — Mine, the Miner value and the scoring pass.
//
// Concurrency model (Workers > 1):
//   producer  : one goroutine drives the Enumerator (not concurrency-safe)
//               and prunes combinations below min_support.
//   workers   : N goroutines compute confidence and CF of admitted candidates.
//   collector : the calling goroutine gathers accepted rules.
// Every accepted rule carries its enumeration Seq and the ranking key
// (CF desc, Seq asc) is a total order, so arrival order does not matter.

package miner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/fuzzar/config"
	"github.com/katalvlaran/fuzzar/dataset"
	"github.com/katalvlaran/fuzzar/fuzzify"
	"github.com/katalvlaran/fuzzar/itemset"
	"github.com/katalvlaran/fuzzar/metrics"
)

// Mine extracts the ranked rule list from ds under cfg.
//
// Errors: ErrOptionViolation, any config.ErrConfiguration sentinel,
// dataset.ErrEmptyDataset, dataset.ErrNonFinite, or the context error when
// cancelled. On error no rules are returned.
//
// Complexity: O(rows × candidates × k) time in the worst case, where k is the
// maximum rule length; O(rows × items) memory for the degree table.
func Mine(ds *dataset.Dataset, cfg config.Config, opts ...Option) ([]Rule, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	t, err := fuzzify.Fuzzify(ds, cfg)
	if err != nil {
		return nil, fmt.Errorf("Mine: %w", err)
	}

	return mine(t, cfg, o)
}

// Miner binds a configuration and default options. It holds no dataset state
// and may be shared between goroutines.
type Miner struct {
	cfg  config.Config
	opts []Option
}

// NewMiner checks cfg and opts up front and returns a reusable Miner.
func NewMiner(cfg config.Config, opts ...Option) (*Miner, error) {
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("NewMiner: %w", err)
	}
	if _, err := buildOptions(opts); err != nil {
		return nil, fmt.Errorf("NewMiner: %w", err)
	}
	return &Miner{cfg: cfg, opts: slices.Clone(opts)}, nil
}

// Config returns the bound configuration.
func (m *Miner) Config() config.Config { return m.cfg }

// Mine runs Mine with the bound configuration; opts are applied after the
// Miner's own options.
func (m *Miner) Mine(ds *dataset.Dataset, opts ...Option) ([]Rule, error) {
	all := make([]Option, 0, len(m.opts)+len(opts))
	all = append(all, m.opts...)
	return Mine(ds, m.cfg, append(all, opts...)...)
}

// scored is an accepted rule with its ranking keys.
type scored struct {
	cand  itemset.Candidate
	score metrics.Score
}

// pass holds the state of one mining run.
type pass struct {
	table   *fuzzify.Table
	scorer  *metrics.Scorer
	minSup  float64
	minConf float64

	evaluated atomic.Int64
	pruned    atomic.Int64
}

func mine(t *fuzzify.Table, cfg config.Config, o Options) ([]Rule, error) {
	start := time.Now()

	en, err := itemset.New(t.Universe(),
		itemset.WithMaxLength(cfg.MaxRuleLength),
		itemset.WithPartitionPolicy(o.Policy))
	if err != nil {
		return nil, fmt.Errorf("Mine: %w", err)
	}

	p := &pass{
		table:   t,
		scorer:  metrics.NewScorer(t),
		minSup:  cfg.MinSupport,
		minConf: cfg.MinConfidence,
	}

	o.Logger.Debug("mining started",
		zap.Int("rows", t.Rows()),
		zap.Int("items", t.Universe().Len()),
		zap.Int("max_length", en.MaxLength()),
		zap.Int("candidates", en.Count()),
		zap.Stringer("policy", en.Policy()),
		zap.Int("workers", o.Workers))

	var found []scored
	if o.Workers == 1 {
		found, err = p.sequential(o.Ctx, en)
	} else {
		found, err = p.parallel(o.Ctx, en, o.Workers)
	}
	if err != nil {
		return nil, fmt.Errorf("Mine: %w", err)
	}

	slices.SortFunc(found, compareScored)

	u := t.Universe()
	rules := make([]Rule, 0, len(found))
	for _, s := range found {
		r := Rule{
			Antecedent:      u.Items(s.cand.Antecedent),
			Consequent:      u.Items(s.cand.Consequent),
			Support:         s.score.Support,
			Confidence:      s.score.Confidence,
			CertaintyFactor: s.score.CertaintyFactor,
		}
		if o.Filter != nil {
			ok, err := o.Filter.Match(r)
			if err != nil {
				return nil, fmt.Errorf("Mine: %w", err)
			}
			if !ok {
				continue
			}
		}
		rules = append(rules, r)
		if o.TopN > 0 && len(rules) == o.TopN {
			break
		}
	}
	for _, r := range rules {
		o.OnRule(r)
	}

	o.Logger.Debug("mining finished",
		zap.Int64("evaluated", p.evaluated.Load()),
		zap.Int64("pruned_combinations", p.pruned.Load()),
		zap.Int("accepted", len(found)),
		zap.Int("returned", len(rules)),
		zap.Int("memoized_supports", p.scorer.Memoized()),
		zap.Duration("elapsed", time.Since(start)))

	return rules, nil
}

// produce drives the enumerator, skipping combinations whose itemset support
// is below min_support, and hands every other candidate to emit. It stops when
// ctx is done or emit returns false.
func (p *pass) produce(ctx context.Context, en *itemset.Enumerator, emit func(itemset.Candidate) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for c, ok := en.Next(); ok; c, ok = en.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.scorer.Support(c.Items()) < p.minSup {
			en.SkipCombination()
			p.pruned.Add(1)
			continue
		}
		if !emit(c) {
			return ctx.Err()
		}
	}
	return nil
}

// evaluate scores c and reports whether it passes both thresholds.
func (p *pass) evaluate(c itemset.Candidate) (scored, bool) {
	p.evaluated.Add(1)
	s := p.scorer.Score(c)
	if s.Support < p.minSup || s.Confidence < p.minConf {
		return scored{}, false
	}
	return scored{cand: c, score: s}, true
}

func (p *pass) sequential(ctx context.Context, en *itemset.Enumerator) ([]scored, error) {
	var found []scored
	err := p.produce(ctx, en, func(c itemset.Candidate) bool {
		if s, ok := p.evaluate(c); ok {
			found = append(found, s)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (p *pass) parallel(ctx context.Context, en *itemset.Enumerator, workers int) ([]scored, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan itemset.Candidate, 4*workers)
	results := make(chan scored, 4*workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				if s, ok := p.evaluate(c); ok {
					results <- s
				}
			}
		}()
	}

	var produceErr error
	go func() {
		defer close(jobs)
		produceErr = p.produce(ctx, en, func(c itemset.Candidate) bool {
			select {
			case jobs <- c:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var found []scored
	for s := range results {
		found = append(found, s)
	}
	// results is closed only after all workers exit, which follows close(jobs).
	if produceErr != nil {
		return nil, produceErr
	}
	return found, nil
}

// compareScored orders by certainty factor descending, then by enumeration order.
func compareScored(a, b scored) int {
	switch {
	case a.score.CertaintyFactor > b.score.CertaintyFactor:
		return -1
	case a.score.CertaintyFactor < b.score.CertaintyFactor:
		return 1
	default:
		return a.cand.Seq - b.cand.Seq
	}
}

// Rank stable-sorts rules by certainty factor, descending, in place. Rules
// with equal certainty factors keep their relative order.
func Rank(rules []Rule) {
	slices.SortStableFunc(rules, func(a, b Rule) int {
		switch {
		case a.CertaintyFactor > b.CertaintyFactor:
			return -1
		case a.CertaintyFactor < b.CertaintyFactor:
			return 1
		default:
			return 0
		}
	})
}
