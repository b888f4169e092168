package sensitivity

import (
	"math"
	"sort"
)

// DefaultSpiderSteps are the relative moves of each base value plotted on
// the spider chart.
var DefaultSpiderSteps = []float64{-0.20, -0.10, 0, 0.10, 0.20}

// scenarioDepth is the number of top ranked variables combined into the
// optimistic and pessimistic scenarios.
const scenarioDepth = 3

// Variable is one tornado input. Low <= Base <= High is expected but not
// enforced; swings are computed from whatever ordering is supplied.
type Variable struct {
	Name   string
	Base   float64
	Low    float64
	High   float64
	Factor float64
}

// outcome applies the linear swing (value-base)*factor to the base outcome.
func (v Variable) outcome(baseOutcome, value float64) float64 {
	return baseOutcome + (value-v.Base)*v.Factor
}

// TornadoBar is one ranked variable.
type TornadoBar struct {
	Variable    string
	BaseValue   float64
	LowValue    float64
	HighValue   float64
	LowOutcome  float64
	HighOutcome float64
	LowChange   float64
	HighChange  float64
	Swing       float64
	Rank        int
}

// SpiderPoint is the outcome at one relative move of a variable.
type SpiderPoint struct {
	PercentChange float64
	Value         float64
	Outcome       float64
}

// SpiderSeries is the sweep of one variable.
type SpiderSeries struct {
	Variable string
	Points   []SpiderPoint
}

// Scenarios bound the outcome by stacking the best or worst swing of the top
// ranked variables onto the base outcome.
type Scenarios struct {
	Optimistic  float64
	Pessimistic float64
	Base        float64
}

// Analysis is the full tornado/spider output.
type Analysis struct {
	BaseOutcome       float64
	Tornado           []TornadoBar
	Spider            []SpiderSeries
	CriticalVariables []string
	Breakeven         map[string]float64
	Scenarios         Scenarios
}

// Analyze swaps each variable to its low and high values holding the others
// at base, ranks variables by |high-low| outcome, sweeps the spider steps and
// solves breakevens.
func Analyze(baseOutcome float64, vars []Variable, spiderSteps []float64) Analysis {
	a := Analysis{
		BaseOutcome: baseOutcome,
		Breakeven:   map[string]float64{},
		Scenarios:   Scenarios{Optimistic: baseOutcome, Pessimistic: baseOutcome, Base: baseOutcome},
	}

	for _, v := range vars {
		low := v.outcome(baseOutcome, v.Low)
		high := v.outcome(baseOutcome, v.High)
		a.Tornado = append(a.Tornado, TornadoBar{
			Variable:    v.Name,
			BaseValue:   v.Base,
			LowValue:    v.Low,
			HighValue:   v.High,
			LowOutcome:  low,
			HighOutcome: high,
			LowChange:   low - baseOutcome,
			HighChange:  high - baseOutcome,
			Swing:       math.Abs(high - low),
		})

		if be, ok := Breakeven(v, low, high); ok {
			a.Breakeven[v.Name] = be
		}

		a.Spider = append(a.Spider, spider(v, baseOutcome, spiderSteps))
	}

	sort.SliceStable(a.Tornado, func(i, j int) bool {
		return a.Tornado[i].Swing > a.Tornado[j].Swing
	})
	for i := range a.Tornado {
		a.Tornado[i].Rank = i + 1
	}

	for i, bar := range a.Tornado {
		if i >= scenarioDepth {
			break
		}
		a.CriticalVariables = append(a.CriticalVariables, bar.Variable)
		a.Scenarios.Optimistic += math.Max(bar.LowChange, bar.HighChange)
		a.Scenarios.Pessimistic += math.Min(bar.LowChange, bar.HighChange)
	}

	return a
}

// Breakeven interpolates the input value at which the outcome crosses zero.
// ok is false unless the low and high outcomes straddle zero.
func Breakeven(v Variable, lowOutcome, highOutcome float64) (float64, bool) {
	if lowOutcome*highOutcome >= 0 {
		return 0, false
	}
	t := -lowOutcome / (highOutcome - lowOutcome)
	return v.Low + t*(v.High-v.Low), true
}

func spider(v Variable, baseOutcome float64, steps []float64) SpiderSeries {
	s := SpiderSeries{Variable: v.Name}
	for _, step := range steps {
		value := v.Base * (1 + step)
		s.Points = append(s.Points, SpiderPoint{
			PercentChange: step * 100,
			Value:         value,
			Outcome:       v.outcome(baseOutcome, value),
		})
	}
	return s
}
