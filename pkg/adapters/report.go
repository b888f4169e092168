package adapters

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/models/domain"
	"github.com/samber/lo"
)

const notDetermined = "n/a"

// MapResponseToReport renders a calculator response as a terminal report.
func MapResponseToReport(calculator string, response any, generatedAt time.Time) (*domain.Report, error) {
	report := &domain.Report{Calculator: calculator, GeneratedAt: generatedAt}

	switch r := response.(type) {
	case api.IRRResponse:
		report.Title = "Internal Rate of Return"
		report.Sections = irrSections(r)
	case api.NPVResponse:
		report.Title = "Net Present Value"
		report.Sections = npvSections(r)
	case api.MonteCarloResponse:
		report.Title = "Monte Carlo Simulation"
		report.Sections = monteCarloSections(r)
	case api.SensitivityResponse:
		report.Title = "Sensitivity Analysis"
		report.Sections = sensitivitySections(r)
	case api.AttributionResponse:
		report.Title = "Shapley Attribution"
		report.Sections = attributionSections(r)
	case api.PrioritizationResponse:
		report.Title = "RICE Prioritization"
		report.Sections = prioritizationSections(r)
	default:
		return nil, fmt.Errorf("no report layout for %T", response)
	}

	return report, nil
}

func orNA(v *float64) interface{} {
	if v == nil {
		return notDetermined
	}
	return *v
}

func irrSections(r api.IRRResponse) []domain.ReportSection {
	summary := map[string]interface{}{
		"Reinvestment rate": r.ReinvestmentRateUsed,
		"Finance rate":      r.FinanceRateUsed,
	}
	if r.HurdleRate != nil {
		summary["Hurdle rate"] = *r.HurdleRate
	}
	if r.Recommendation != "" {
		summary["Recommendation"] = r.Recommendation
	}

	return []domain.ReportSection{{
		Title:   "Returns",
		Summary: summary,
		Details: []domain.ReportDetail{
			{Name: "IRR", Value: orNA(r.IRR), Unit: "%", Description: "Rate at which NPV is zero"},
			{Name: "MIRR", Value: r.MIRR, Unit: "%", Description: "Modified IRR"},
			{Name: "Simple payback", Value: orNA(r.SimplePaybackYears), Unit: "years", Description: "Undiscounted recovery time"},
			{Name: "Discounted payback", Value: orNA(r.DiscountedPaybackYears), Unit: "years", Description: "Recovery time on discounted flows"},
		},
	}}
}

func npvSections(r api.NPVResponse) []domain.ReportSection {
	sections := []domain.ReportSection{{
		Title: "Result",
		Summary: map[string]interface{}{
			"NPV":            r.NPV,
			"Interpretation": r.Interpretation,
			"Recommendation": r.Recommendation,
		},
		Details: []domain.ReportDetail{
			{Name: "Initial investment", Value: r.InitialInvestment},
			{Name: "Discount rate", Value: r.DiscountRate},
			{Name: "Profitability index", Value: orNA(r.ProfitabilityIndex), Description: "PV of inflows / initial investment"},
		},
	}}

	breakdown := domain.ReportSection{Title: "Present value breakdown"}
	for _, p := range r.PresentValueBreakdown {
		breakdown.Details = append(breakdown.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("Period %d", p.Period),
			Value:       p.PresentValue,
			Description: fmt.Sprintf("cash flow %.2f x factor %.6f", p.CashFlow, p.DiscountFactor),
		})
	}

	sweep := domain.ReportSection{Title: "Rate sensitivity"}
	for _, label := range sortedKeys(r.SensitivityAnalysis) {
		sweep.Details = append(sweep.Details, domain.ReportDetail{Name: label, Value: r.SensitivityAnalysis[label], Description: "NPV"})
	}

	return append(sections, breakdown, sweep)
}

func monteCarloSections(r api.MonteCarloResponse) []domain.ReportSection {
	stats := domain.ReportSection{
		Title: "Distribution",
		Summary: map[string]interface{}{
			"Iterations":           r.Iterations,
			"Capped":               r.IterationsCapped,
			"Seed":                 r.Seed,
			"Probability positive": r.ProbabilityPositive,
		},
		Details: []domain.ReportDetail{
			{Name: "Mean", Value: r.Mean},
			{Name: "Std dev", Value: r.StdDev, Description: "population"},
			{Name: "Min", Value: r.Min},
			{Name: "Max", Value: r.Max},
		},
	}

	keys := lo.Keys(r.Percentiles)
	sort.Slice(keys, func(i, j int) bool { return percentileOrder(keys[i]) < percentileOrder(keys[j]) })
	for _, k := range keys {
		stats.Details = append(stats.Details, domain.ReportDetail{Name: k, Value: r.Percentiles[k], Description: "percentile"})
	}

	histogram := domain.ReportSection{Title: "Histogram"}
	for _, b := range r.HistogramData {
		histogram.Details = append(histogram.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("[%.2f, %.2f]", b.BinStart, b.BinEnd),
			Value:       b.Count,
			Description: strings.Repeat("#", int(b.Frequency*50)),
		})
	}

	return []domain.ReportSection{stats, histogram}
}

func percentileOrder(key string) float64 {
	var v float64
	_, _ = fmt.Sscanf(key, "p%g", &v)
	return v
}

func sensitivitySections(r api.SensitivityResponse) []domain.ReportSection {
	tornado := domain.ReportSection{
		Title: "Tornado",
		Summary: map[string]interface{}{
			"Base outcome":       r.BaseCaseOutcome,
			"Critical variables": strings.Join(r.CriticalVariables, ", "),
			"Optimistic":         r.Scenarios.Optimistic,
			"Pessimistic":        r.Scenarios.Pessimistic,
		},
	}
	for _, e := range r.TornadoData {
		tornado.Details = append(tornado.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("#%d %s", e.Rank, e.Variable),
			Value:       e.Swing,
			Unit:        "swing",
			Description: fmt.Sprintf("%.2f .. %.2f", e.LowOutcome, e.HighOutcome),
		})
	}

	breakeven := domain.ReportSection{Title: "Breakeven points"}
	for _, name := range sortedKeys(r.BreakevenPoints) {
		breakeven.Details = append(breakeven.Details, domain.ReportDetail{Name: name, Value: r.BreakevenPoints[name], Description: "outcome crosses zero"})
	}

	return []domain.ReportSection{tornado, breakeven}
}

func attributionSections(r api.AttributionResponse) []domain.ReportSection {
	channels := domain.ReportSection{
		Title: "Channels",
		Summary: map[string]interface{}{
			"Total paths":     r.PathAnalysis.TotalPaths,
			"Unique channels": r.PathAnalysis.UniqueChannels,
			"Avg path length": r.PathAnalysis.AvgPathLength,
		},
	}
	if len(r.PathAnalysis.DroppedChannels) > 0 {
		channels.Summary["Dropped channels"] = strings.Join(r.PathAnalysis.DroppedChannels, ", ")
	}
	for _, ch := range sortedKeys(r.ShapleyValues) {
		desc := fmt.Sprintf("revenue %.2f", r.IncrementalRevenue[ch])
		if roas := r.MarginalROAS[ch]; roas != nil {
			desc += fmt.Sprintf(", ROAS %.2f", *roas)
		}
		channels.Details = append(channels.Details, domain.ReportDetail{Name: ch, Value: r.ShapleyValues[ch], Unit: "share", Description: desc})
	}

	paths := domain.ReportSection{Title: "Top paths"}
	for _, p := range r.PathAnalysis.TopPaths {
		paths.Details = append(paths.Details, domain.ReportDetail{Name: p.Path, Value: p.Count, Unit: "paths"})
	}

	return []domain.ReportSection{channels, paths}
}

func prioritizationSections(r api.PrioritizationResponse) []domain.ReportSection {
	ranking := domain.ReportSection{
		Title: "Ranking",
		Summary: map[string]interface{}{
			"Initiatives":  r.Summary.TotalInitiatives,
			"Median score": r.Summary.MedianScore,
			"Total effort": r.Summary.TotalEffort,
		},
	}
	for _, i := range r.RankedInitiatives {
		ranking.Details = append(ranking.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("#%d %s", i.Rank, i.Name),
			Value:       i.RICEScore,
			Unit:        "RICE",
			Description: fmt.Sprintf("R=%g I=%g C=%g E=%g", i.Reach, i.Impact, i.Confidence, i.Effort),
		})
	}

	recs := domain.ReportSection{
		Title:   "Recommendations",
		Summary: map[string]interface{}{"Most sensitive factor": r.SensitivityAnalysis.MostSensitiveFactor},
	}
	for _, rec := range r.Recommendations {
		recs.Details = append(recs.Details, domain.ReportDetail{Name: rec.Type, Value: strings.Join(rec.Initiatives, ", "), Description: rec.Message})
	}

	return []domain.ReportSection{ranking, recs}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
