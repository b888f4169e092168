package finance

// DefaultRateOffsets is the rate sweep applied around the base discount rate.
var DefaultRateOffsets = []float64{-0.02, -0.01, 0, 0.01, 0.02}

// RatePoint is the NPV evaluated at one discount rate.
type RatePoint struct {
	Rate float64
	NPV  float64
}

// RateSweep evaluates NPV at base+offset for every offset, skipping any
// resulting rate that is not positive.
func RateSweep(s CashFlowSeries, base float64, offsets []float64) []RatePoint {
	out := make([]RatePoint, 0, len(offsets))
	for _, off := range offsets {
		rate := base + off
		if rate <= 0 {
			continue
		}
		out = append(out, RatePoint{Rate: rate, NPV: NPV(s, rate)})
	}
	return out
}

// Verdict is the binary accept/reject reading of an NPV.
type Verdict struct {
	Interpretation string
	Recommendation string
}

// Interpret accepts strictly positive NPVs only.
func Interpret(npv float64) Verdict {
	if npv > 0 {
		return Verdict{Interpretation: "positive", Recommendation: "Accept investment"}
	}
	return Verdict{Interpretation: "negative", Recommendation: "Reject investment"}
}
