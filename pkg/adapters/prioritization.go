package adapters

import (
	"github.com/de-tools/plan-analytics/pkg/analytics/prioritization"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/samber/lo"
)

func MapInitiatives(in []api.Initiative) []prioritization.Initiative {
	return lo.Map(in, func(i api.Initiative, _ int) prioritization.Initiative {
		return prioritization.Initiative{
			Name:       i.Name,
			Reach:      i.Reach,
			Impact:     i.Impact,
			Confidence: i.Confidence,
			Effort:     i.Effort,
		}
	})
}

// MapWeights overlays the request weights on the defaults.
func MapWeights(w *api.RICEWeights) prioritization.Weights {
	out := prioritization.DefaultWeights()
	if w == nil {
		return out
	}
	if w.Reach != nil {
		out.Reach = *w.Reach
	}
	if w.Impact != nil {
		out.Impact = *w.Impact
	}
	if w.Confidence != nil {
		out.Confidence = *w.Confidence
	}
	if w.Effort != nil {
		out.Effort = *w.Effort
	}
	return out
}

func MapPrioritizationResultToApi(res *prioritization.Result) api.PrioritizationResponse {
	return api.PrioritizationResponse{
		RankedInitiatives: lo.Map(res.Ranked, func(r prioritization.Ranked, _ int) api.RankedInitiative {
			return api.RankedInitiative{
				Rank:       r.Rank,
				Name:       r.Name,
				Reach:      r.Reach,
				Impact:     r.Impact,
				Confidence: r.Confidence,
				Effort:     r.Effort,
				RICEScore:  money(r.Score),
			}
		}),
		SensitivityAnalysis: api.RICESensitivity{
			AverageChangePercent: roundMap(res.Sensitivity, percent),
			MostSensitiveFactor:  res.MostSensitive,
		},
		Recommendations: lo.Map(res.Recommendations, func(r prioritization.Recommendation, _ int) api.Recommendation {
			return api.Recommendation{Type: r.Type, Message: r.Message, Initiatives: r.Initiatives}
		}),
		Summary: api.PrioritizationSummary{
			TotalInitiatives: res.Summary.Count,
			AverageScore:     money(res.Summary.AverageScore),
			MedianScore:      money(res.Summary.MedianScore),
			MaxScore:         money(res.Summary.MaxScore),
			MinScore:         money(res.Summary.MinScore),
			TotalEffort:      money(res.Summary.TotalEffort),
		},
	}
}
