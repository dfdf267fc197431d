package rulegraph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/fuzzar/fuzzify"
	"github.com/katalvlaran/fuzzar/miner"
	"github.com/katalvlaran/fuzzar/rulegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainGraph:
//
//	rule_0: A=High            ⇒ B=High  (CF 1.0)
//	rule_1: A=Medium ∧ C=Low  ⇒ B=High  (CF 0.5)
//	rule_2: B=High            ⇒ D=Low   (CF 0.3)
//	rule_3: D=Low ∧ C=Low     ⇒ E=High  (CF 0.9)
func chainGraph(t *testing.T) *rulegraph.Graph {
	t.Helper()
	rules := append(sampleRules(),
		miner.Rule{
			Antecedent:      []fuzzify.Item{item("B", "High")},
			Consequent:      []fuzzify.Item{item("D", "Low")},
			CertaintyFactor: 0.3,
		},
		miner.Rule{
			Antecedent:      []fuzzify.Item{item("D", "Low"), item("C", "Low")},
			Consequent:      []fuzzify.Item{item("E", "High")},
			CertaintyFactor: 0.9,
		},
	)
	g, err := rulegraph.FromRules(rules)
	require.NoError(t, err)
	return g
}

// TestInfer_SingleFact follows the chain until a rule lacks an antecedent.
func TestInfer_SingleFact(t *testing.T) {
	res, err := rulegraph.Infer(chainGraph(t), []string{"A='High'"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A='High'", "B='High'", "D='Low'"}, res.Order)
	assert.Equal(t, []string{"rule_0", "rule_2"}, res.Fired)
	assert.Equal(t, 2, res.Depth["D='Low'"])
	assert.Equal(t, "rule_2", res.Parent["D='Low'"])
	assert.False(t, res.Derived("E='High'"))

	why, err := res.Explain("D='Low'")
	require.NoError(t, err)
	assert.Equal(t, []string{"rule_0", "rule_2"}, why)

	why, err = res.Explain("A='High'")
	require.NoError(t, err)
	assert.Empty(t, why)

	_, err = res.Explain("E='High'")
	assert.ErrorIs(t, err, rulegraph.ErrNodeNotFound)
}

// TestInfer_Conjunction fires a rule only when all antecedents are known.
func TestInfer_Conjunction(t *testing.T) {
	var fired []string
	res, err := rulegraph.Infer(chainGraph(t), []string{"A='High'", "C='Low'", "A='High'"},
		rulegraph.WithOnFire(func(id string, depth int) error {
			fired = append(fired, id)
			return nil
		}))
	require.NoError(t, err)
	assert.Equal(t, []string{"A='High'", "C='Low'", "B='High'", "D='Low'", "E='High'"}, res.Order)
	assert.Equal(t, []string{"rule_0", "rule_2", "rule_3"}, res.Fired)
	assert.Equal(t, res.Fired, fired)
	assert.Equal(t, 3, res.Depth["E='High'"])

	why, err := res.Explain("E='High'")
	require.NoError(t, err)
	assert.Equal(t, []string{"rule_0", "rule_2", "rule_3"}, why)
}

// TestInfer_Limits honors MaxDepth and MinCertainty.
func TestInfer_Limits(t *testing.T) {
	facts := []string{"A='High'", "C='Low'"}

	res, err := rulegraph.Infer(chainGraph(t), facts, rulegraph.WithMaxDepth(2))
	require.NoError(t, err)
	assert.True(t, res.Derived("D='Low'"))
	assert.False(t, res.Derived("E='High'"))

	res, err = rulegraph.Infer(chainGraph(t), facts, rulegraph.WithMinCertainty(0.4))
	require.NoError(t, err)
	assert.Equal(t, []string{"rule_0"}, res.Fired)
	assert.False(t, res.Derived("D='Low'"))
}

// TestInfer_Errors covers bad facts, options, hooks and cancellation.
func TestInfer_Errors(t *testing.T) {
	g := chainGraph(t)

	_, err := rulegraph.Infer(g, []string{"rule_0"})
	assert.ErrorIs(t, err, rulegraph.ErrNotItem)
	_, err = rulegraph.Infer(g, []string{"Z='Low'"})
	assert.ErrorIs(t, err, rulegraph.ErrNodeNotFound)
	_, err = rulegraph.Infer(g, nil, rulegraph.WithMaxDepth(-1))
	assert.ErrorIs(t, err, rulegraph.ErrOptionViolation)
	_, err = rulegraph.Infer(g, nil, rulegraph.WithMinCertainty(2))
	assert.ErrorIs(t, err, rulegraph.ErrOptionViolation)

	stop := errors.New("stop")
	_, err = rulegraph.Infer(g, []string{"A='High'"}, rulegraph.WithOnFire(func(string, int) error { return stop }))
	assert.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rulegraph.Infer(g, []string{"A='High'"}, rulegraph.WithInferContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	res, err := rulegraph.Infer(g, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Order)
}
