package finance

import "github.com/de-tools/plan-analytics/pkg/analytics/numeric"

// CashFlowSeries is an initial outlay followed by period cash flows.
// CashFlows[0] is received at the end of period 1.
type CashFlowSeries struct {
	InitialInvestment float64
	CashFlows         []float64
}

// Periods returns the number of cash-flow periods.
func (s CashFlowSeries) Periods() int {
	return len(s.CashFlows)
}

// NPV returns -InitialInvestment + sum(cf_t / (1+rate)^t).
func NPV(s CashFlowSeries, rate float64) float64 {
	total := -s.InitialInvestment
	for i, cf := range s.CashFlows {
		total += numeric.PresentValue(cf, rate, i+1)
	}
	return total
}

// npvDerivative is d/dr of NPV: sum(-t * cf_t / (1+r)^(t+1)). The initial
// outlay sits at t=0 and does not contribute.
func npvDerivative(s CashFlowSeries, rate float64) float64 {
	total := 0.0
	for i, cf := range s.CashFlows {
		t := i + 1
		total += -float64(t) * cf * numeric.DiscountFactor(rate, t+1)
	}
	return total
}

// PeriodValue is one row of a present-value breakdown.
type PeriodValue struct {
	Period         int
	CashFlow       float64
	DiscountFactor float64
	PresentValue   float64
}

// Breakdown lists the discount factor and present value of every period.
func Breakdown(s CashFlowSeries, rate float64) []PeriodValue {
	out := make([]PeriodValue, 0, len(s.CashFlows))
	for i, cf := range s.CashFlows {
		df := numeric.DiscountFactor(rate, i+1)
		out = append(out, PeriodValue{
			Period:         i + 1,
			CashFlow:       cf,
			DiscountFactor: df,
			PresentValue:   cf * df,
		})
	}
	return out
}

// ProfitabilityIndex is PV(inflows)/InitialInvestment. ok is false when the
// initial investment is not positive.
func ProfitabilityIndex(s CashFlowSeries, rate float64) (float64, bool) {
	if s.InitialInvestment <= 0 {
		return 0, false
	}
	return (NPV(s, rate) + s.InitialInvestment) / s.InitialInvestment, true
}
