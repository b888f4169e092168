package adapters

import "github.com/de-tools/plan-analytics/pkg/analytics/numeric"

// Decimal places applied to response values.
const (
	MoneyPlaces   int32 = 2
	PercentPlaces int32 = 2
	RatePlaces    int32 = 6
	SharePlaces   int32 = 6
)

func money(x float64) float64   { return numeric.Round(x, MoneyPlaces) }
func percent(x float64) float64 { return numeric.Round(x, PercentPlaces) }
func rate(x float64) float64    { return numeric.Round(x, RatePlaces) }
func share(x float64) float64   { return numeric.Round(x, SharePlaces) }

func roundMap(in map[string]float64, round func(float64) float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = round(v)
	}
	return out
}
