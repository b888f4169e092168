package sensitivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVars() []Variable {
	return []Variable{
		{Name: "price", Base: 10, Low: 8, High: 12, Factor: 1000},     // swing 4000
		{Name: "volume", Base: 500, Low: 400, High: 700, Factor: 10},  // swing 3000
		{Name: "cost", Base: 5, Low: 4, High: 6, Factor: -500},        // swing 1000
		{Name: "churn", Base: 0.1, Low: 0.05, High: 0.2, Factor: -100}, // swing 15
	}
}

func TestAnalyze_Ranking(t *testing.T) {
	a := Analyze(1000, sampleVars(), DefaultSpiderSteps)

	require.Len(t, a.Tornado, 4)
	names := []string{}
	for i, bar := range a.Tornado {
		assert.Equal(t, i+1, bar.Rank)
		names = append(names, bar.Variable)
	}
	assert.Equal(t, []string{"price", "volume", "cost", "churn"}, names)
	assert.Equal(t, []string{"price", "volume", "cost"}, a.CriticalVariables)

	price := a.Tornado[0]
	assert.Equal(t, -1000.0, price.LowOutcome)
	assert.Equal(t, 3000.0, price.HighOutcome)
	assert.Equal(t, -2000.0, price.LowChange)
	assert.Equal(t, 2000.0, price.HighChange)
	assert.Equal(t, 4000.0, price.Swing)

	cost := a.Tornado[2]
	assert.Equal(t, 1500.0, cost.LowOutcome)
	assert.Equal(t, 500.0, cost.HighOutcome)
}

func TestAnalyze_Scenarios(t *testing.T) {
	a := Analyze(1000, sampleVars(), DefaultSpiderSteps)

	// price +2000/-2000, volume +2000/-1000, cost +500/-500
	assert.Equal(t, 1000+2000+2000+500.0, a.Scenarios.Optimistic)
	assert.Equal(t, 1000-2000-1000-500.0, a.Scenarios.Pessimistic)
	assert.Equal(t, 1000.0, a.Scenarios.Base)
}

func TestAnalyze_Breakeven(t *testing.T) {
	a := Analyze(1000, sampleVars(), DefaultSpiderSteps)

	require.Contains(t, a.Breakeven, "price")
	assert.InDelta(t, 9.0, a.Breakeven["price"], 1e-9)
	assert.NotContains(t, a.Breakeven, "volume")

	for _, v := range sampleVars() {
		be, ok := a.Breakeven[v.Name]
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, be, v.Low)
		assert.LessOrEqual(t, be, v.High)
	}
}

func TestBreakeven_ReversedBounds(t *testing.T) {
	v := Variable{Name: "x", Base: 5, Low: 10, High: 0, Factor: 1}
	be, ok := Breakeven(v, 5, -5)
	require.True(t, ok)
	assert.InDelta(t, 5.0, be, 1e-9)

	_, ok = Breakeven(v, 0, 5)
	assert.False(t, ok, "touching zero is not a crossing")
}

func TestAnalyze_Spider(t *testing.T) {
	a := Analyze(100, []Variable{{Name: "x", Base: 50, Low: 40, High: 60, Factor: 2}}, DefaultSpiderSteps)

	require.Len(t, a.Spider, 1)
	points := a.Spider[0].Points
	require.Len(t, points, 5)

	assert.InDelta(t, -20.0, points[0].PercentChange, 1e-9)
	assert.InDelta(t, 40.0, points[0].Value, 1e-9)
	assert.InDelta(t, 80.0, points[0].Outcome, 1e-9)
	assert.InDelta(t, 100.0, points[2].Outcome, 1e-9)
	assert.InDelta(t, 120.0, points[4].Outcome, 1e-9)
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(42, nil, DefaultSpiderSteps)
	assert.Empty(t, a.Tornado)
	assert.Empty(t, a.CriticalVariables)
	assert.Equal(t, Scenarios{Optimistic: 42, Pessimistic: 42, Base: 42}, a.Scenarios)
}
