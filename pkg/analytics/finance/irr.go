package finance

import (
	"math"

	"github.com/de-tools/plan-analytics/pkg/analytics/numeric"
)

// IRROptions tunes the Newton-Raphson root search.
type IRROptions struct {
	// InitialGuess is the starting rate r0 (default: 0.10)
	InitialGuess float64
	// MaxIterations bounds the search (default: 1000)
	MaxIterations int
	// Tolerance applies both to |f'(r)| and to the step |dr| (default: 1e-6)
	Tolerance float64
	// ResidualThreshold is the absolute |NPV(r)| accepted as a root (default: 1.0).
	// It is expressed in currency units and therefore scale dependent.
	ResidualThreshold float64
}

// DefaultIRROptions returns the default root search settings.
func DefaultIRROptions() IRROptions {
	return IRROptions{
		InitialGuess:      0.10,
		MaxIterations:     1000,
		Tolerance:         1e-6,
		ResidualThreshold: 1.0,
	}
}

// IRR finds the rate at which NPV is zero. ok is false when the search
// leaves the domain (r <= -100%) or the residual NPV is not below
// ResidualThreshold; callers report that as "undetermined".
func IRR(s CashFlowSeries, opts IRROptions) (rate float64, ok bool) {
	if len(s.CashFlows) == 0 {
		return 0, false
	}

	rate = opts.InitialGuess
	for i := 0; i < opts.MaxIterations; i++ {
		f := NPV(s, rate)
		df := npvDerivative(s, rate)
		if math.Abs(df) < opts.Tolerance {
			break
		}

		next := rate - f/df
		if !numeric.IsFinite(next) || next <= -1 {
			return 0, false
		}

		step := next - rate
		rate = next
		if math.Abs(step) < opts.Tolerance {
			break
		}
	}

	residual := NPV(s, rate)
	if !numeric.IsFinite(residual) || math.Abs(residual) >= opts.ResidualThreshold {
		return 0, false
	}
	return rate, true
}

// MIRR compounds positive flows forward at reinvestRate and discounts the
// initial outlay plus negative flows at financeRate:
// (FV_pos / |PV_neg|)^(1/n) - 1. Returns 0 when either aggregate is not positive.
func MIRR(s CashFlowSeries, reinvestRate, financeRate float64) float64 {
	n := len(s.CashFlows)
	if n == 0 {
		return 0
	}

	fvPositive := 0.0
	pvNegative := math.Abs(s.InitialInvestment)
	for i, cf := range s.CashFlows {
		t := i + 1
		if cf > 0 {
			fvPositive += cf * math.Pow(1+reinvestRate, float64(n-t))
		} else if cf < 0 {
			pvNegative += math.Abs(numeric.PresentValue(cf, financeRate, t))
		}
	}

	if fvPositive <= 0 || pvNegative <= 0 {
		return 0
	}
	return math.Pow(fvPositive/pvNegative, 1/float64(n)) - 1
}

// Payback returns the fractional number of periods until cumulative cash
// flow recovers the initial investment, interpolating linearly inside the
// crossing period. ok is false when the investment is never recovered.
func Payback(s CashFlowSeries) (float64, bool) {
	return paybackWalk(s.InitialInvestment, s.CashFlows, func(cf float64, _ int) float64 { return cf })
}

// DiscountedPayback is Payback over cash flows discounted at rate.
func DiscountedPayback(s CashFlowSeries, rate float64) (float64, bool) {
	return paybackWalk(s.InitialInvestment, s.CashFlows, func(cf float64, t int) float64 {
		return numeric.PresentValue(cf, rate, t)
	})
}

func paybackWalk(investment float64, flows []float64, value func(cf float64, t int) float64) (float64, bool) {
	if investment <= 0 {
		return 0, true
	}

	cumulative := 0.0
	for i, cf := range flows {
		t := i + 1
		v := value(cf, t)
		if v > 0 && cumulative+v >= investment {
			return float64(t-1) + (investment-cumulative)/v, true
		}
		cumulative += v
	}
	return 0, false
}

// HurdleCheck compares an IRR against a hurdle rate. An undetermined IRR never
// exceeds the hurdle.
func HurdleCheck(irr float64, ok bool, hurdle float64) (exceeds bool, recommendation string) {
	switch {
	case !ok:
		return false, "IRR could not be determined; review the cash flow pattern"
	case irr > hurdle:
		return true, "Accept: IRR exceeds hurdle rate"
	default:
		return false, "Reject: IRR below hurdle rate"
	}
}
