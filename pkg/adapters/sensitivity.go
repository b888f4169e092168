package adapters

import (
	"github.com/de-tools/plan-analytics/pkg/analytics/sensitivity"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/samber/lo"
)

// OutcomeKey is the base_case entry holding the base outcome.
const OutcomeKey = "outcome"

// MapSensitivityVariables resolves optional fields: base falls back to the
// base_case entry of the same name, then to the low/high midpoint, and the
// sensitivity factor defaults to 1.
func MapSensitivityVariables(req api.SensitivityRequest) []sensitivity.Variable {
	return lo.Map(req.Variables, func(v api.SensitivityVariable, _ int) sensitivity.Variable {
		base := (v.Low + v.High) / 2
		if b, ok := req.BaseCase[v.Name]; ok {
			base = b
		}
		if v.Base != nil {
			base = *v.Base
		}

		factor := 1.0
		if v.SensitivityFactor != nil {
			factor = *v.SensitivityFactor
		}

		return sensitivity.Variable{
			Name:   v.Name,
			Base:   base,
			Low:    v.Low,
			High:   v.High,
			Factor: factor,
		}
	})
}

func MapSensitivityAnalysisToApi(a sensitivity.Analysis) api.SensitivityResponse {
	return api.SensitivityResponse{
		BaseCaseOutcome: money(a.BaseOutcome),
		TornadoData: lo.Map(a.Tornado, func(b sensitivity.TornadoBar, _ int) api.TornadoEntry {
			return api.TornadoEntry{
				Variable:    b.Variable,
				BaseValue:   rate(b.BaseValue),
				LowValue:    rate(b.LowValue),
				HighValue:   rate(b.HighValue),
				LowOutcome:  money(b.LowOutcome),
				HighOutcome: money(b.HighOutcome),
				LowChange:   money(b.LowChange),
				HighChange:  money(b.HighChange),
				Swing:       money(b.Swing),
				Rank:        b.Rank,
			}
		}),
		SpiderData: lo.Map(a.Spider, func(s sensitivity.SpiderSeries, _ int) api.SpiderSeries {
			return api.SpiderSeries{
				Variable: s.Variable,
				Points: lo.Map(s.Points, func(p sensitivity.SpiderPoint, _ int) api.SpiderPoint {
					return api.SpiderPoint{
						PercentChange: percent(p.PercentChange),
						Value:         rate(p.Value),
						Outcome:       money(p.Outcome),
					}
				}),
			}
		}),
		CriticalVariables: lo.Ternary(a.CriticalVariables == nil, []string{}, a.CriticalVariables),
		BreakevenPoints:   roundMap(a.Breakeven, rate),
		Scenarios: api.Scenarios{
			Optimistic:  money(a.Scenarios.Optimistic),
			Pessimistic: money(a.Scenarios.Pessimistic),
			Base:        money(a.Scenarios.Base),
		},
	}
}
