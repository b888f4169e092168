package adapters

import (
	"fmt"

	"github.com/de-tools/plan-analytics/pkg/analytics/finance"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/samber/lo"
)

func MapCashFlowSeries(initialInvestment float64, cashFlows []float64) finance.CashFlowSeries {
	return finance.CashFlowSeries{
		InitialInvestment: initialInvestment,
		CashFlows:         append([]float64(nil), cashFlows...),
	}
}

func MapBreakdownToApi(rows []finance.PeriodValue) []api.PresentValueItem {
	return lo.Map(rows, func(r finance.PeriodValue, _ int) api.PresentValueItem {
		return api.PresentValueItem{
			Period:         r.Period,
			CashFlow:       money(r.CashFlow),
			DiscountFactor: rate(r.DiscountFactor),
			PresentValue:   money(r.PresentValue),
		}
	})
}

// RateLabel formats a decimal rate as the percentage key used in sweep
// results, e.g. 0.08 -> "8.00%".
func RateLabel(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}

func MapRateSweepToApi(points []finance.RatePoint) map[string]float64 {
	out := make(map[string]float64, len(points))
	for _, p := range points {
		out[RateLabel(p.Rate)] = money(p.NPV)
	}
	return out
}

// MapRateToApi rounds a decimal rate and its percentage form.
func MapRateToApi(r float64) (pct, decimal float64) {
	return percent(r * 100), rate(r)
}

func MapMoneyToApi(x float64) float64 { return money(x) }

func MapRatioToApi(x float64) float64 { return rate(x) }
