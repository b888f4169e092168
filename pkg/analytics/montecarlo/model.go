package montecarlo

import (
	"fmt"
	"math"
	"strings"

	"github.com/de-tools/plan-analytics/pkg/analytics/numeric"
)

// Model names accepted by NewModel. Anything unrecognised sums the draws.
const (
	ModelSum     = "sum"
	ModelNPV     = "NPV"
	ModelRevenue = "Revenue"
	ModelFormula = "formula"
)

const (
	defaultNPVYears = 5
	maxNPVYears     = 100
	// rates at or below -100% make (1+r)^t meaningless
	minNPVRate = -0.99
)

// Model turns one iteration's draws (indexed like the request variables)
// into an outcome.
type Model interface {
	Evaluate(values []float64) float64
}

type sumModel struct{}

func (sumModel) Evaluate(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// npvModel discounts a level annuity built from the sampled inputs.
// Missing inputs use fixed defaults.
type npvModel struct {
	cashFlow, rate, investment, years int
}

func (m npvModel) Evaluate(values []float64) float64 {
	get := func(idx int, fallback float64) float64 {
		if idx < 0 {
			return fallback
		}
		return values[idx]
	}

	cf := get(m.cashFlow, 0)
	rate := math.Max(get(m.rate, 0.10), minNPVRate)
	investment := get(m.investment, 0)
	years := int(math.Round(get(m.years, defaultNPVYears)))
	years = max(0, min(years, maxNPVYears))

	total := -investment
	for t := 1; t <= years; t++ {
		total += numeric.PresentValue(cf, rate, t)
	}
	return total
}

type revenueModel struct {
	price, volume int
}

func (m revenueModel) Evaluate(values []float64) float64 {
	if m.price < 0 || m.volume < 0 {
		return 0
	}
	return values[m.price] * values[m.volume]
}

type formulaModel struct {
	root exprNode
}

func (m formulaModel) Evaluate(values []float64) float64 {
	return m.root.eval(values)
}

// NewModel resolves a model by name. A non-empty formula always selects the
// formula model.
func NewModel(name, formula string, vars []Variable) (Model, error) {
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v.Name] = i
	}
	lookup := func(key string) int {
		if i, ok := index[key]; ok {
			return i
		}
		return -1
	}

	if formula != "" || strings.EqualFold(name, ModelFormula) {
		root, err := compileFormula(formula, index)
		if err != nil {
			return nil, fmt.Errorf("invalid formula: %w", err)
		}
		return formulaModel{root: root}, nil
	}

	switch strings.ToLower(name) {
	case strings.ToLower(ModelNPV):
		return npvModel{
			cashFlow:   lookup("annual_cash_flow"),
			rate:       lookup("discount_rate"),
			investment: lookup("initial_investment"),
			years:      lookup("years"),
		}, nil
	case strings.ToLower(ModelRevenue):
		return revenueModel{price: lookup("price"), volume: lookup("volume")}, nil
	default:
		return sumModel{}, nil
	}
}
