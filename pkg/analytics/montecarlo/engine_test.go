package montecarlo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(v uint64) *uint64 { return &v }

func TestEngine_IterationCount(t *testing.T) {
	e := NewEngine(DefaultSettings())
	vars := []Variable{{Name: "x", Distribution: Uniform, Params: map[string]float64{"min": 0, "max": 1}}}

	tests := []struct {
		name      string
		requested int
		expected  int
		capped    bool
	}{
		{"Explicit", 1234, 1234, false},
		{"Default", 0, 10000, false},
		{"AtCap", 50000, 50000, false},
		{"OverCap", 75000, 50000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Run(context.Background(), Request{Variables: vars, Iterations: tt.requested, Seed: seed(1)})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.Iterations)
			assert.Len(t, res.Results, tt.expected)
			assert.Equal(t, tt.capped, res.Capped)
		})
	}
}

func TestEngine_SettingsCannotLiftHardCap(t *testing.T) {
	// Given settings asking for more draws than the hard cap
	settings := DefaultSettings()
	settings.MaxIterations = 80000
	e := NewEngine(settings)

	// When
	res, err := e.Run(context.Background(), Request{
		Variables:  []Variable{{Name: "x", Params: map[string]float64{"value": 1}}},
		Iterations: 70000,
		Seed:       seed(1),
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, IterationCap, res.Iterations)
	assert.True(t, res.Capped)
}

func TestEngine_SkipsNonFiniteDraws(t *testing.T) {
	// Given a formula that divides by a count that is often zero
	req := Request{
		Variables:  []Variable{{Name: "k", Distribution: Poisson, Params: map[string]float64{"lambda": 0.7}}},
		Formula:    "1 / k",
		Iterations: 4000,
		Seed:       seed(9),
	}

	// When
	res, err := NewEngine(DefaultSettings()).Run(context.Background(), req)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 4000, res.Iterations)
	assert.Greater(t, res.NonFiniteDraws, 0)
	assert.Less(t, res.NonFiniteDraws, 4000)
	assert.Len(t, res.Results, 4000-res.NonFiniteDraws)
	assert.LessOrEqual(t, res.Max, 1.0)
	assert.Equal(t, 1.0, res.ProbabilityPositive)
}

func TestEngine_SeededRunsAreReproducible(t *testing.T) {
	vars := []Variable{
		{Name: "price", Distribution: Normal, Params: map[string]float64{"mean": 50, "std": 5}},
		{Name: "volume", Distribution: Triangular, Params: map[string]float64{"min": 100, "mode": 150, "max": 300}},
	}
	req := Request{Variables: vars, Model: ModelRevenue, Iterations: 5500, Seed: seed(42)}

	single := DefaultSettings()
	single.Workers = 1
	many := DefaultSettings()
	many.Workers = 8

	a, err := NewEngine(single).Run(context.Background(), req)
	require.NoError(t, err)
	b, err := NewEngine(many).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Results, b.Results)
	assert.Equal(t, a.Mean, b.Mean)
	assert.Equal(t, uint64(42), a.Seed)
}

func TestEngine_Summary(t *testing.T) {
	vars := []Variable{{Name: "x", Distribution: Normal, Params: map[string]float64{"mean": 100, "std": 10}}}
	res, err := NewEngine(DefaultSettings()).Run(context.Background(), Request{
		Variables:        vars,
		Iterations:       20000,
		ConfidenceLevels: []float64{5, 50, 95},
		Seed:             seed(7),
	})
	require.NoError(t, err)

	assert.InDelta(t, 100, res.Mean, 0.5)
	assert.InDelta(t, 10, res.StdDev, 0.5)
	assert.Equal(t, 1.0, res.ProbabilityPositive)
	require.Len(t, res.Percentiles, 3)
	assert.InDelta(t, 83.55, res.Percentiles[0].Value, 1)
	assert.InDelta(t, 100, res.Percentiles[1].Value, 1)
	assert.InDelta(t, 116.45, res.Percentiles[2].Value, 1)
	assert.LessOrEqual(t, res.Min, res.Percentiles[0].Value)
	assert.GreaterOrEqual(t, res.Max, res.Percentiles[2].Value)

	require.Len(t, res.Histogram, 20)
	total := 0
	for _, b := range res.Histogram {
		total += b.Count
	}
	assert.Equal(t, 20000, total)
}

func TestEngine_NPVModel(t *testing.T) {
	vars := []Variable{
		{Name: "annual_cash_flow", Distribution: "fixed", Params: map[string]float64{"value": 30000}},
		{Name: "discount_rate", Distribution: "fixed", Params: map[string]float64{"value": 0.10}},
		{Name: "initial_investment", Distribution: "fixed", Params: map[string]float64{"value": 100000}},
		{Name: "years", Distribution: "fixed", Params: map[string]float64{"value": 5}},
	}
	res, err := NewEngine(DefaultSettings()).Run(context.Background(), Request{
		Variables: vars, Model: ModelNPV, Iterations: 10, Seed: seed(1),
	})
	require.NoError(t, err)

	for _, v := range res.Results {
		assert.InDelta(t, 13723.60, v, 0.01)
	}
	assert.InDelta(t, 0, res.StdDev, 1e-6)
	assert.Len(t, res.Histogram, 1)
}

func TestEngine_SumModelIsDefault(t *testing.T) {
	vars := []Variable{
		{Name: "a", Params: map[string]float64{"value": 2}},
		{Name: "b", Params: map[string]float64{"value": -5}},
	}
	res, err := NewEngine(DefaultSettings()).Run(context.Background(), Request{Variables: vars, Iterations: 3, Seed: seed(1)})
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -3, -3}, res.Results)
	assert.Zero(t, res.ProbabilityPositive)
}

func TestEngine_Formula(t *testing.T) {
	vars := []Variable{
		{Name: "price", Params: map[string]float64{"value": 20}},
		{Name: "units", Params: map[string]float64{"value": 1000}},
		{Name: "cost", Params: map[string]float64{"value": 12000}},
	}
	res, err := NewEngine(DefaultSettings()).Run(context.Background(), Request{
		Variables:  vars,
		Formula:    "price * units - cost",
		Iterations: 2,
		Seed:       seed(1),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{8000, 8000}, res.Results)
}

func TestEngine_RejectsBadInput(t *testing.T) {
	e := NewEngine(DefaultSettings())
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
	}{
		{"NoVariables", Request{}},
		{"Unnamed", Request{Variables: []Variable{{Distribution: Normal}}}},
		{"Duplicate", Request{Variables: []Variable{{Name: "x"}, {Name: "x"}}}},
		{"BadTriangular", Request{Variables: []Variable{{Name: "x", Distribution: Triangular, Params: map[string]float64{"min": 5, "mode": 1, "max": 10}}}}},
		{"UnknownIdentifier", Request{Variables: []Variable{{Name: "x"}}, Formula: "x + y"}},
		{"BadLevel", Request{Variables: []Variable{{Name: "x"}}, ConfidenceLevels: []float64{120}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Run(ctx, tt.req)
			assert.Error(t, err)
		})
	}

	_, err := e.Run(ctx, Request{
		Variables:  []Variable{{Name: "x", Params: map[string]float64{"value": 0}}},
		Formula:    "1 / x",
		Iterations: 5,
	})
	assert.ErrorIs(t, err, ErrNonFiniteOutcome)
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(DefaultSettings()).Run(ctx, Request{
		Variables:  []Variable{{Name: "x", Distribution: Uniform}},
		Iterations: 5000,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
