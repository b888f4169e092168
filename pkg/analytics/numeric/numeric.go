package numeric

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/combin"
)

// DiscountFactor returns 1/(1+rate)^period.
func DiscountFactor(rate float64, period int) float64 {
	return 1 / math.Pow(1+rate, float64(period))
}

// PresentValue discounts a single cash flow received at the given period.
func PresentValue(cashFlow, rate float64, period int) float64 {
	return cashFlow * DiscountFactor(rate, period)
}

// Percentile picks the nearest-rank value at index floor(p/100*(n-1)) of an
// already sorted slice. p is clamped to [0, 100].
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(100, p))
	idx := int(math.Floor(p / 100 * float64(len(sorted)-1)))
	return sorted[idx]
}

// PopMeanStdDev returns the mean and the population (divide by N) standard
// deviation of values.
func PopMeanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	return mean, math.Sqrt(variance)
}

// ShapleyWeight is the coalition weight |S|!(n-|S|-1)!/n! for a coalition of
// size s drawn from n players.
func ShapleyWeight(n, s int) float64 {
	if n <= 0 || s < 0 || s >= n {
		return 0
	}
	return 1 / (float64(n) * float64(combin.Binomial(n-1, s)))
}

// Round rounds half away from zero to the given number of decimal places.
// Non-finite values are returned unchanged.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// RoundPtr rounds a nullable value.
func RoundPtr(x *float64, places int32) *float64 {
	if x == nil {
		return nil
	}
	v := Round(*x, places)
	return &v
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
