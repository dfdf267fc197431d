package fuzzify_test

import (
	"testing"

	"github.com/katalvlaran/fuzzar/config"
	"github.com/katalvlaran/fuzzar/dataset"
	"github.com/katalvlaran/fuzzar/fuzzify"
	"github.com/katalvlaran/fuzzar/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func sample(t *testing.T) (*dataset.Dataset, config.Config) {
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
	return ds, cfg
}

// TestUniverse_Order checks the declaration-order layout.
func TestUniverse_Order(t *testing.T) {
	_, cfg := sample(t)
	u := fuzzify.NewUniverse(cfg)
	require.Equal(t, 5, u.Len())
	assert.Equal(t, fuzzify.Item{Variable: "A", Label: "Low"}, u.Item(0))
	assert.Equal(t, fuzzify.Item{Variable: "B", Label: "High"}, u.Item(4))
	assert.Equal(t, []int{0, 0, 0, 1, 1}, []int{u.VarOf(0), u.VarOf(1), u.VarOf(2), u.VarOf(3), u.VarOf(4)})
	assert.Equal(t, 2, u.Variables())
	assert.Equal(t, "B", u.VariableName(1))
	assert.Equal(t, 3, u.Index(fuzzify.Item{Variable: "B", Label: "Low"}))
	assert.Equal(t, -1, u.Index(fuzzify.Item{Variable: "B", Label: "Medium"}))
	assert.Equal(t, "A='Medium'", u.Item(1).String())
}

// TestFuzzify_Degrees compares the full table against hand-computed degrees.
func TestFuzzify_Degrees(t *testing.T) {
	ds, cfg := sample(t)
	tbl, err := fuzzify.Fuzzify(ds, cfg)
	require.NoError(t, err)
	require.Equal(t, 4, tbl.Rows())

	want := [][]float64{
		// A=Low A=Medium A=High B=Low B=High
		{0, 0, 0, 1, 0},
		{0, 0.5, 0, 0, 1},
		{0, 1, 0, 0.5, 0.5},
		{0, 0.5, 0.5, 0, 0.5},
	}
	for r, row := range want {
		for i, d := range row {
			assert.InDelta(t, d, tbl.Degree(r, i), eps, "row %d item %s", r, tbl.Universe().Item(i))
		}
		assert.Len(t, tbl.Row(r), 5)
	}

	d, ok := tbl.Lookup(2, "A", "Medium")
	require.True(t, ok)
	assert.Equal(t, 1.0, d)
	_, ok = tbl.Lookup(2, "A", "Huge")
	assert.False(t, ok)
	_, ok = tbl.Lookup(9, "A", "Low")
	assert.False(t, ok)
}

// TestFuzzify_ShoulderPolicy applies the shoulder reading of (0,0,20).
func TestFuzzify_ShoulderPolicy(t *testing.T) {
	ds, cfg := sample(t)
	cfg.EdgePolicy = fuzzy.Shoulder
	tbl, err := fuzzify.Fuzzify(ds, cfg)
	require.NoError(t, err)
	got := []float64{tbl.Degree(0, 0), tbl.Degree(1, 0), tbl.Degree(2, 0), tbl.Degree(3, 0)}
	assert.InDeltaSlice(t, []float64{0.5, 0, 0, 0}, got, eps)
}

// TestFuzzify_DoesNotMutateDataset re-reads the columns after fuzzification.
func TestFuzzify_DoesNotMutateDataset(t *testing.T) {
	ds, cfg := sample(t)
	_, err := fuzzify.Fuzzify(ds, cfg)
	require.NoError(t, err)
	a, err := ds.Column("A")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40}, a)
}

// TestFuzzify_ConfigErrors surfaces validation failures before any work.
func TestFuzzify_ConfigErrors(t *testing.T) {
	ds, cfg := sample(t)
	cfg.Variables[1].Name = "Missing"
	_, err := fuzzify.Fuzzify(ds, cfg)
	assert.ErrorIs(t, err, config.ErrUnknownVariable)

	empty, err := dataset.New([]string{"A", "B"}, nil)
	require.NoError(t, err)
	_, cfg = sample(t)
	_, err = fuzzify.Fuzzify(empty, cfg)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

// TestNewTable validates shape and range.
func TestNewTable(t *testing.T) {
	_, cfg := sample(t)
	u := fuzzify.NewUniverse(cfg)

	tbl, err := fuzzify.NewTable(u, [][]float64{{0, 0.2, 0.4, 0.6, 1}})
	require.NoError(t, err)
	assert.Equal(t, 0.6, tbl.Degree(0, 3))

	_, err = fuzzify.NewTable(u, [][]float64{{0, 1}})
	assert.ErrorIs(t, err, dataset.ErrRaggedData)

	_, err = fuzzify.NewTable(u, [][]float64{{0, 0, 0, 0, 1.5}})
	assert.Error(t, err)
}
