package miner_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/katalvlaran/fuzzar/config"
	"github.com/katalvlaran/fuzzar/dataset"
	"github.com/katalvlaran/fuzzar/fuzzify"
	"github.com/katalvlaran/fuzzar/fuzzy"
	"github.com/katalvlaran/fuzzar/itemset"
	"github.com/katalvlaran/fuzzar/metrics"
	"github.com/katalvlaran/fuzzar/miner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const eps = 1e-12

// sample returns the A/B walkthrough dataset and configuration.
func sample(t testing.TB) (*dataset.Dataset, config.Config) {
	t.Helper()
	ds, err := dataset.FromColumns([]string{"A", "B"}, map[string][]float64{
		"A": {10, 20, 30, 40},
		"B": {50, 60, 55, 70},
	})
	require.NoError(t, err)
	cfg := config.New(
		config.Variable{Name: "A", Sets: []fuzzy.Set{
			{Label: "Low", A: 0, B: 0, C: 20},
			{Label: "Medium", A: 10, B: 30, C: 50},
			{Label: "High", A: 30, B: 50, C: 60},
		}},
		config.Variable{Name: "B", Sets: []fuzzy.Set{
			{Label: "Low", A: 40, B: 50, C: 60},
			{Label: "High", A: 50, B: 60, C: 80},
		}},
	)
	cfg.MinSupport = 0.05
	cfg.MinConfidence = 0.3
	return ds, cfg
}

// synthetic builds n correlated rows over X, Y, Z with three sets each.
func synthetic(t testing.TB, n int) (*dataset.Dataset, config.Config) {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	clamp := func(v float64) float64 { return math.Max(0, math.Min(100, v)) }
	cols := map[string][]float64{}
	for i := 0; i < n; i++ {
		x := rng.Float64() * 100
		cols["X"] = append(cols["X"], x)
		cols["Y"] = append(cols["Y"], clamp(0.6*x+rng.NormFloat64()*10+20))
		cols["Z"] = append(cols["Z"], clamp(100-x+rng.NormFloat64()*15))
	}
	ds, err := dataset.FromColumns([]string{"X", "Y", "Z"}, cols)
	require.NoError(t, err)

	sets := []fuzzy.Set{
		{Label: "Low", A: -50, B: 0, C: 50},
		{Label: "Mid", A: 0, B: 50, C: 100},
		{Label: "High", A: 50, B: 100, C: 150},
	}
	cfg := config.New(
		config.Variable{Name: "X", Sets: sets},
		config.Variable{Name: "Y", Sets: sets},
		config.Variable{Name: "Z", Sets: sets},
	)
	cfg.MinSupport = 0.05
	cfg.MinConfidence = 0.3
	return ds, cfg
}

func item(v, l string) fuzzify.Item { return fuzzify.Item{Variable: v, Label: l} }

// TestMine_Walkthrough checks the exact rules of the two-variable example.
func TestMine_Walkthrough(t *testing.T) {
	ds, cfg := sample(t)
	rules, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, []fuzzify.Item{item("A", "High")}, rules[0].Antecedent)
	assert.Equal(t, []fuzzify.Item{item("B", "High")}, rules[0].Consequent)
	assert.InDelta(t, 0.125, rules[0].Support, eps)
	assert.InDelta(t, 1.0, rules[0].Confidence, eps)
	assert.InDelta(t, 1.0, rules[0].CertaintyFactor, eps)

	assert.Equal(t, []fuzzify.Item{item("A", "Medium")}, rules[1].Antecedent)
	assert.Equal(t, []fuzzify.Item{item("B", "High")}, rules[1].Consequent)
	assert.InDelta(t, 0.375, rules[1].Support, eps)
	assert.InDelta(t, 0.75, rules[1].Confidence, eps)
	assert.InDelta(t, 0.5, rules[1].CertaintyFactor, eps)

	assert.Equal(t, "IF A is Medium THEN B is High", rules[1].String())
}

// TestMine_ShoulderTieBreak: equal CFs keep enumeration order.
func TestMine_ShoulderTieBreak(t *testing.T) {
	ds, cfg := sample(t)
	cfg.EdgePolicy = fuzzy.Shoulder
	rules, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	require.Len(t, rules, 3)

	assert.Equal(t, "IF A is Low THEN B is Low", rules[0].String())
	assert.Equal(t, "IF A is High THEN B is High", rules[1].String())
	assert.Equal(t, "IF A is Medium THEN B is High", rules[2].String())
	assert.Equal(t, rules[0].CertaintyFactor, rules[1].CertaintyFactor)
}

// TestMine_AllPartitions also yields consequent-first directions.
func TestMine_AllPartitions(t *testing.T) {
	ds, cfg := sample(t)
	rules, err := miner.Mine(ds, cfg, miner.WithPartitionPolicy(itemset.AllPartitions))
	require.NoError(t, err)

	var got []string
	for _, r := range rules {
		got = append(got, r.String())
	}
	assert.Equal(t, []string{
		"IF A is High THEN B is High",
		"IF A is Medium THEN B is High",
		"IF B is High THEN A is Medium",
		"IF B is Low THEN A is Medium",
	}, got)
	assert.InDelta(t, -1.0/3, rules[3].CertaintyFactor, 1e-9)
}

// TestMine_MatchesBruteForce compares against scoring every candidate.
func TestMine_MatchesBruteForce(t *testing.T) {
	ds, cfg := synthetic(t, 120)
	tbl, err := fuzzify.Fuzzify(ds, cfg)
	require.NoError(t, err)
	cands, err := itemset.Collect(tbl.Universe())
	require.NoError(t, err)

	var want []miner.Rule
	for _, c := range cands {
		sup := metrics.Support(tbl, c.Items())
		conf := metrics.Confidence(tbl, c.Antecedent, c.Consequent)
		if sup < cfg.MinSupport || conf < cfg.MinConfidence {
			continue
		}
		want = append(want, miner.Rule{
			Antecedent:      tbl.Universe().Items(c.Antecedent),
			Consequent:      tbl.Universe().Items(c.Consequent),
			Support:         sup,
			Confidence:      conf,
			CertaintyFactor: metrics.CertaintyFactorOf(tbl, c.Antecedent, c.Consequent),
		})
	}
	miner.Rank(want)

	got, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, want, got)
}

// TestMine_Invariants checks structural and threshold invariants of every rule.
func TestMine_Invariants(t *testing.T) {
	ds, cfg := synthetic(t, 200)
	rules, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, rules)

	for i, r := range rules {
		require.NotEmpty(t, r.Antecedent)
		require.NotEmpty(t, r.Consequent)
		vars := map[string]bool{}
		for _, it := range append(append([]fuzzify.Item{}, r.Antecedent...), r.Consequent...) {
			require.False(t, vars[it.Variable], "variable repeated in %s", r)
			vars[it.Variable] = true
		}
		n := len(r.Antecedent) + len(r.Consequent)
		require.True(t, n >= 2 && n <= 3)
		require.GreaterOrEqual(t, r.Support, cfg.MinSupport)
		require.GreaterOrEqual(t, r.Confidence, cfg.MinConfidence)
		require.True(t, r.CertaintyFactor >= -1 && r.CertaintyFactor <= 1)
		if i > 0 {
			require.GreaterOrEqual(t, rules[i-1].CertaintyFactor, r.CertaintyFactor)
		}
	}
}

// TestMine_Deterministic runs the same input twice and with several worker counts.
func TestMine_Deterministic(t *testing.T) {
	ds, cfg := synthetic(t, 150)
	base, err := miner.Mine(ds, cfg)
	require.NoError(t, err)

	again, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	assert.Equal(t, base, again)

	for _, w := range []int{2, 3, 8} {
		got, err := miner.Mine(ds, cfg, miner.WithWorkers(w))
		require.NoError(t, err)
		assert.Equal(t, base, got, "workers=%d", w)
	}
}

// TestMine_ConcurrentCalls shares nothing between independent runs.
func TestMine_ConcurrentCalls(t *testing.T) {
	dsA, cfgA := sample(t)
	dsB, cfgB := synthetic(t, 80)
	wantA, err := miner.Mine(dsA, cfgA)
	require.NoError(t, err)
	wantB, err := miner.Mine(dsB, cfgB)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				got, err := miner.Mine(dsA, cfgA)
				assert.NoError(t, err)
				assert.Equal(t, wantA, got)
				return
			}
			got, err := miner.Mine(dsB, cfgB, miner.WithWorkers(2))
			assert.NoError(t, err)
			assert.Equal(t, wantB, got)
		}(i)
	}
	wg.Wait()
}

// TestMine_Thresholds covers the extremes of min_support and min_confidence.
func TestMine_Thresholds(t *testing.T) {
	ds, cfg := sample(t)

	cfg.MinSupport, cfg.MinConfidence = 1, 0
	rules, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	assert.Empty(t, rules)

	cfg.MinSupport, cfg.MinConfidence = 0, 0
	rules, err = miner.Mine(ds, cfg)
	require.NoError(t, err)
	assert.Len(t, rules, 6, "every A⇒B pair is accepted")
}

// TestMine_ThresholdsInclusive re-mines with thresholds equal to each rule's
// own support and confidence; the rule must survive, sequentially and in parallel.
func TestMine_ThresholdsInclusive(t *testing.T) {
	ds, cfg := sample(t)
	cfg.MinSupport, cfg.MinConfidence = 0, 0
	all, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	require.Len(t, all, 6)

	for _, want := range all {
		at := cfg
		at.MinSupport, at.MinConfidence = want.Support, want.Confidence
		for _, workers := range []int{1, 4} {
			got, err := miner.Mine(ds, at, miner.WithWorkers(workers))
			require.NoError(t, err)
			assert.Contains(t, got, want, "%s at workers=%d", want, workers)
			for _, r := range got {
				assert.GreaterOrEqual(t, r.Support, want.Support)
				assert.GreaterOrEqual(t, r.Confidence, want.Confidence)
			}
		}
	}
}

// TestMine_SingleVariable yields no rules and no error.
func TestMine_SingleVariable(t *testing.T) {
	ds, cfg := sample(t)
	cfg.Variables = cfg.Variables[:1]
	rules, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

// TestMine_Errors checks that invalid input fails before any rule is produced.
func TestMine_Errors(t *testing.T) {
	ds, cfg := sample(t)

	bad := cfg
	bad.Variables = append([]config.Variable{}, cfg.Variables...)
	bad.Variables[1] = config.Variable{Name: "C", Sets: cfg.Variables[1].Sets}
	rules, err := miner.Mine(ds, bad)
	assert.Nil(t, rules)
	assert.True(t, errors.Is(err, config.ErrConfiguration))
	assert.True(t, errors.Is(err, config.ErrUnknownVariable))

	bad = cfg
	bad.MinConfidence = 2
	_, err = miner.Mine(ds, bad)
	assert.ErrorIs(t, err, config.ErrThresholdRange)

	empty, err := dataset.New([]string{"A", "B"}, nil)
	require.NoError(t, err)
	_, err = miner.Mine(empty, cfg)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	noRows, err := dataset.FromRows([]map[string]float64{})
	require.NoError(t, err)
	_, err = miner.Mine(noRows, cfg)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
	assert.False(t, errors.Is(err, config.ErrUnknownVariable))

	nan, err := dataset.New([]string{"A", "B"}, [][]float64{{1, math.NaN()}})
	require.NoError(t, err)
	_, err = miner.Mine(nan, cfg)
	assert.ErrorIs(t, err, dataset.ErrNonFinite)

	for _, opt := range []miner.Option{
		miner.WithWorkers(0),
		miner.WithTopN(-1),
		miner.WithPartitionPolicy(itemset.PartitionPolicy(9)),
	} {
		_, err = miner.Mine(ds, cfg, opt)
		assert.ErrorIs(t, err, miner.ErrOptionViolation)
	}
}

// TestMine_Cancelled returns the context error and no rules.
func TestMine_Cancelled(t *testing.T) {
	ds, cfg := synthetic(t, 50)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, w := range []int{1, 4} {
		rules, err := miner.Mine(ds, cfg, miner.WithContext(ctx), miner.WithWorkers(w))
		assert.Nil(t, rules)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", w)
	}
}

// TestMine_TopNAndHook truncates after ranking and reports rules in order.
func TestMine_TopNAndHook(t *testing.T) {
	ds, cfg := synthetic(t, 100)
	all, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	require.Greater(t, len(all), 3)

	var seen []miner.Rule
	top, err := miner.Mine(ds, cfg, miner.WithTopN(3), miner.WithOnRule(func(r miner.Rule) {
		seen = append(seen, r)
	}))
	require.NoError(t, err)
	assert.Equal(t, all[:3], top)
	assert.Equal(t, top, seen)

	big, err := miner.Mine(ds, cfg, miner.WithTopN(len(all)+10))
	require.NoError(t, err)
	assert.Equal(t, all, big)
}

// TestMine_Logging emits start and finish records at Debug.
func TestMine_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ds, cfg := sample(t)
	_, err := miner.Mine(ds, cfg, miner.WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "mining started", entries[0].Message)
	assert.Equal(t, "mining finished", entries[1].Message)
	assert.EqualValues(t, 2, entries[1].ContextMap()["accepted"])
}

// TestMiner_Reuse binds a configuration once and mines several datasets.
func TestMiner_Reuse(t *testing.T) {
	ds, cfg := sample(t)
	m, err := miner.NewMiner(cfg, miner.WithTopN(1))
	require.NoError(t, err)
	assert.Equal(t, cfg, m.Config())

	rules, err := m.Mine(ds)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "IF A is High THEN B is High", rules[0].String())

	rules, err = m.Mine(ds, miner.WithTopN(0))
	require.NoError(t, err)
	assert.Len(t, rules, 2, "call options override bound ones")

	cfg.MinSupport = -1
	_, err = miner.NewMiner(cfg)
	assert.ErrorIs(t, err, config.ErrThresholdRange)
	_, err = miner.NewMiner(config.New(), miner.WithWorkers(-3))
	assert.Error(t, err)
}

// TestRank is stable on equal certainty factors.
func TestRank(t *testing.T) {
	rules := []miner.Rule{
		{CertaintyFactor: 0.1, Support: 1},
		{CertaintyFactor: 0.9, Support: 2},
		{CertaintyFactor: 0.1, Support: 3},
		{CertaintyFactor: -0.5, Support: 4},
		{CertaintyFactor: 0.9, Support: 5},
	}
	miner.Rank(rules)
	var order []float64
	for _, r := range rules {
		order = append(order, r.Support)
	}
	assert.Equal(t, []float64{2, 5, 1, 3, 4}, order)
}

// TestSummarize checks aggregates and the empty list.
func TestSummarize(t *testing.T) {
	assert.Equal(t, miner.Summary{}, miner.Summarize(nil))

	ds, cfg := sample(t)
	rules, err := miner.Mine(ds, cfg)
	require.NoError(t, err)
	s := miner.Summarize(rules)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 0.25, s.SupportMean, eps)
	assert.InDelta(t, 0.125, s.SupportMin, eps)
	assert.InDelta(t, 0.375, s.SupportMax, eps)
	assert.InDelta(t, 0.875, s.ConfidenceMean, eps)
	assert.InDelta(t, 0.75, s.ConfidenceMin, eps)
	assert.InDelta(t, 1.0, s.ConfidenceMax, eps)
	assert.InDelta(t, 0.75, s.CertaintyFactorMean, eps)
}

// TestCodec_RoundTrip persists and restores a mined list.
func TestCodec_RoundTrip(t *testing.T) {
	ds, cfg := synthetic(t, 60)
	rules, err := miner.Mine(ds, cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, miner.EncodeRules(&buf, rules))
	back, err := miner.DecodeRules(&buf)
	require.NoError(t, err)
	assert.Equal(t, rules, back)

	buf.Reset()
	require.NoError(t, miner.EncodeRules(&buf, nil))
	back, err = miner.DecodeRules(&buf)
	require.NoError(t, err)
	assert.Empty(t, back)

	_, err = miner.DecodeRules(bytes.NewReader([]byte("not msgpack")))
	assert.ErrorIs(t, err, miner.ErrBadEncoding)
}
