package adapters

import (
	"strconv"

	"github.com/de-tools/plan-analytics/pkg/analytics/montecarlo"
	"github.com/de-tools/plan-analytics/pkg/analytics/numeric"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/samber/lo"
)

func MapMonteCarloRequest(req api.MonteCarloRequest) montecarlo.Request {
	return montecarlo.Request{
		Variables: lo.Map(req.Variables, func(v api.RandomVariable, _ int) montecarlo.Variable {
			return montecarlo.Variable{
				Name:         v.Name,
				Distribution: montecarlo.Distribution(v.Distribution),
				Params:       v.Params,
			}
		}),
		Model:            req.Model,
		Formula:          req.Formula,
		Iterations:       req.Iterations,
		ConfidenceLevels: req.ConfidenceLevels,
		Seed:             req.Seed,
	}
}

// PercentileKey names a confidence level in the response, e.g. 5 -> "p5",
// 97.5 -> "p97.5".
func PercentileKey(level float64) string {
	return "p" + strconv.FormatFloat(level, 'f', -1, 64)
}

func MapMonteCarloResultToApi(res *montecarlo.Result) api.MonteCarloResponse {
	percentiles := make(map[string]float64, len(res.Percentiles))
	for _, p := range res.Percentiles {
		percentiles[PercentileKey(p.Level)] = money(p.Value)
	}

	return api.MonteCarloResponse{
		Iterations:          res.Iterations,
		IterationsCapped:    res.Capped,
		NonFiniteDraws:      res.NonFiniteDraws,
		Seed:                res.Seed,
		Mean:                money(res.Mean),
		StdDev:              money(res.StdDev),
		Min:                 money(res.Min),
		Max:                 money(res.Max),
		Percentiles:         percentiles,
		ProbabilityPositive: share(res.ProbabilityPositive),
		HistogramData: lo.Map(res.Histogram, func(b numeric.Bin, _ int) api.HistogramBin {
			return api.HistogramBin{
				BinStart:  money(b.Start),
				BinEnd:    money(b.End),
				Count:     b.Count,
				Frequency: share(b.Frequency),
			}
		}),
	}
}
