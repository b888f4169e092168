package adapters

import (
	"github.com/de-tools/plan-analytics/pkg/analytics/attribution"
	"github.com/de-tools/plan-analytics/pkg/analytics/numeric"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/samber/lo"
)

func MapAttributionRequest(req api.AttributionRequest) attribution.Input {
	in := attribution.Input{
		Paths: lo.Map(req.ConversionPaths, func(p []string, _ int) attribution.Path {
			return attribution.Path(p)
		}),
		ChannelCosts: req.ChannelCosts,
	}
	if req.RevenuePerConversion != nil {
		in.RevenuePerConversion = *req.RevenuePerConversion
	}
	return in
}

func MapAttributionResultToApi(res *attribution.Result) api.AttributionResponse {
	roas := make(map[string]*float64, len(res.MarginalROAS))
	for ch, v := range res.MarginalROAS {
		roas[ch] = numeric.RoundPtr(v, RatePlaces)
	}

	pa := res.PathAnalysis
	return api.AttributionResponse{
		ShapleyValues:      roundMap(res.ShapleyValues, share),
		IncrementalRevenue: roundMap(res.IncrementalRevenue, money),
		MarginalROAS:       roas,
		PathAnalysis: api.PathAnalysis{
			TotalPaths:       pa.TotalPaths,
			UniqueChannels:   pa.UniqueChannels,
			AvgPathLength:    percent(pa.AvgPathLength),
			SingleTouchPaths: pa.SingleTouch,
			MultiTouchPaths:  pa.MultiTouch,
			ChannelFrequency: pa.ChannelFrequency,
			TopPaths: lo.Map(pa.TopPaths, func(p attribution.PathCount, _ int) api.PathCount {
				return api.PathCount{Path: p.Path, Count: p.Count}
			}),
			DroppedChannels: pa.DroppedChannels,
		},
	}
}
