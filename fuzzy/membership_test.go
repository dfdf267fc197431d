package fuzzy_test

import (
	"testing"

	"github.com/katalvlaran/fuzzar/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

// TestTriangular_Peak checks f(a)=0, f(b)=1, f(c)=0 for a proper triangle.
func TestTriangular_Peak(t *testing.T) {
	assert.Equal(t, 0.0, fuzzy.Triangular(10, 10, 30, 50))
	assert.Equal(t, 1.0, fuzzy.Triangular(30, 10, 30, 50))
	assert.Equal(t, 0.0, fuzzy.Triangular(50, 10, 30, 50))
	assert.InDelta(t, 0.5, fuzzy.Triangular(20, 10, 30, 50), eps)
	assert.InDelta(t, 0.25, fuzzy.Triangular(45, 10, 30, 50), eps)
}

// TestTriangular_OutsideSupport verifies clamping to 0 outside [a,c].
func TestTriangular_OutsideSupport(t *testing.T) {
	assert.Equal(t, 0.0, fuzzy.Triangular(-100, 10, 30, 50))
	assert.Equal(t, 0.0, fuzzy.Triangular(100, 10, 30, 50))
}

// TestTriangular_Crisp covers a == b == c as an indicator function.
func TestTriangular_Crisp(t *testing.T) {
	assert.Equal(t, 1.0, fuzzy.Triangular(5, 5, 5, 5))
	assert.Equal(t, 0.0, fuzzy.Triangular(5.0001, 5, 5, 5))
	assert.Equal(t, 1.0, fuzzy.TriangularWith(fuzzy.Shoulder, 5, 5, 5, 5))
	assert.Equal(t, 0.0, fuzzy.TriangularWith(fuzzy.Shoulder, 4, 5, 5, 5))
}

// TestTriangular_StrictDegenerateHalf pins the observed behaviour: a shared
// endpoint contributes 0, so (0,0,20) is zero everywhere.
func TestTriangular_StrictDegenerateHalf(t *testing.T) {
	for _, x := range []float64{0, 10, 20, 30} {
		assert.Equal(t, 0.0, fuzzy.Triangular(x, 0, 0, 20), "x=%g", x)
	}
	// right-degenerate half: (10,20,20)
	for _, x := range []float64{10, 15, 20, 25} {
		assert.Equal(t, 0.0, fuzzy.Triangular(x, 10, 20, 20), "x=%g", x)
	}
}

// TestTriangular_ShoulderScenario reproduces the Low=(0,0,20) walkthrough on A=[10,20,30,40].
func TestTriangular_ShoulderScenario(t *testing.T) {
	low := fuzzy.Set{Label: "Low", A: 0, B: 0, C: 20}
	assert.InDelta(t, 0.5, low.DegreeWith(fuzzy.Shoulder, 10), eps)
	assert.Equal(t, 0.0, low.DegreeWith(fuzzy.Shoulder, 20))
	assert.Equal(t, 0.0, low.DegreeWith(fuzzy.Shoulder, 30))
	assert.Equal(t, 0.0, low.DegreeWith(fuzzy.Shoulder, 40))
	assert.Equal(t, 1.0, low.DegreeWith(fuzzy.Shoulder, 0))

	high := fuzzy.Set{Label: "High", A: 30, B: 60, C: 60}
	assert.Equal(t, 1.0, high.DegreeWith(fuzzy.Shoulder, 60))
	assert.InDelta(t, 1.0/3, high.DegreeWith(fuzzy.Shoulder, 40), eps)
}

// TestTriangular_Monotonic sweeps [a,b] and [b,c] and checks range and monotonicity.
func TestTriangular_Monotonic(t *testing.T) {
	shapes := [][3]float64{{0, 5, 10}, {-3, 0, 12}, {1, 1, 4}, {2, 6, 6}, {0, 0.001, 100}}
	for _, p := range []fuzzy.EdgePolicy{fuzzy.Strict, fuzzy.Shoulder} {
		for _, s := range shapes {
			a, b, c := s[0], s[1], s[2]
			prev := -1.0
			for i := 0; i <= 100; i++ {
				x := a + (b-a)*float64(i)/100
				d := fuzzy.TriangularWith(p, x, a, b, c)
				require.GreaterOrEqual(t, d, 0.0)
				require.LessOrEqual(t, d, 1.0)
				require.GreaterOrEqual(t, d, prev, "rising side %v policy %v at %g", s, p, x)
				prev = d
			}
			prev = 2.0
			for i := 0; i <= 100; i++ {
				x := b + (c-b)*float64(i)/100
				d := fuzzy.TriangularWith(p, x, a, b, c)
				require.GreaterOrEqual(t, d, 0.0)
				require.LessOrEqual(t, d, 1.0)
				require.LessOrEqual(t, d, prev, "falling side %v policy %v at %g", s, p, x)
				prev = d
			}
		}
	}
}

// TestSet_Validate covers the a<=b<=c contract.
func TestSet_Validate(t *testing.T) {
	cases := []struct {
		name string
		set  fuzzy.Set
		ok   bool
	}{
		{"proper", fuzzy.Set{Label: "M", A: 1, B: 2, C: 3}, true},
		{"crisp", fuzzy.Set{Label: "M", A: 2, B: 2, C: 2}, true},
		{"left shoulder", fuzzy.Set{Label: "L", A: 0, B: 0, C: 20}, true},
		{"a>b", fuzzy.Set{Label: "M", A: 3, B: 2, C: 4}, false},
		{"b>c", fuzzy.Set{Label: "M", A: 1, B: 5, C: 4}, false},
		{"empty label", fuzzy.Set{A: 1, B: 2, C: 3}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.set.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, fuzzy.ErrBadSet)
			}
		})
	}
}

// TestParseEdgePolicy round-trips the policy names.
func TestParseEdgePolicy(t *testing.T) {
	for _, p := range []fuzzy.EdgePolicy{fuzzy.Strict, fuzzy.Shoulder} {
		got, err := fuzzy.ParseEdgePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := fuzzy.ParseEdgePolicy("")
	require.NoError(t, err)
	assert.Equal(t, fuzzy.Strict, got)

	_, err = fuzzy.ParseEdgePolicy("trapezoid")
	assert.Error(t, err)
}
