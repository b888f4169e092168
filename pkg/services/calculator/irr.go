package calculator

import (
	"context"

	"github.com/de-tools/plan-analytics/pkg/adapters"
	"github.com/de-tools/plan-analytics/pkg/analytics/finance"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/services/config"
	"github.com/rs/zerolog"
)

type IRR struct {
	opts                    finance.IRROptions
	defaultReinvestmentRate float64
}

func NewIRR(cfg config.IRRConfig) *IRR {
	return &IRR{
		opts: finance.IRROptions{
			InitialGuess:      cfg.InitialGuess,
			MaxIterations:     cfg.MaxIterations,
			Tolerance:         cfg.Tolerance,
			ResidualThreshold: cfg.ResidualThreshold,
		},
		defaultReinvestmentRate: cfg.DefaultReinvestmentRate,
	}
}

func (c *IRR) Name() string { return NameIRR }

func (c *IRR) Calculate(ctx context.Context, payload []byte) (any, error) {
	var req api.IRRRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	if len(req.CashFlows) == 0 {
		return nil, invalid("cash_flows is required and must not be empty")
	}
	if err := requireFinite("cash_flows", req.CashFlows...); err != nil {
		return nil, err
	}
	if err := requireFinite("initial_investment", req.InitialInvestment); err != nil {
		return nil, err
	}

	reinvest := valueOr(req.ReinvestmentRate, c.defaultReinvestmentRate)
	financeRate := valueOr(req.FinanceRate, reinvest)
	discount := valueOr(req.DiscountRate, valueOr(req.HurdleRate, reinvest))
	rates := []struct {
		field string
		value float64
	}{
		{"reinvestment_rate", reinvest},
		{"finance_rate", financeRate},
		{"discount_rate", discount},
	}
	for _, r := range rates {
		if err := requireRate(r.field, r.value); err != nil {
			return nil, err
		}
	}

	series := adapters.MapCashFlowSeries(req.InitialInvestment, req.CashFlows)
	irr, ok := finance.IRR(series, c.opts)
	mirr := finance.MIRR(series, reinvest, financeRate)

	resp := api.IRRResponse{
		ReinvestmentRateUsed: adapters.MapRatioToApi(reinvest),
		FinanceRateUsed:      adapters.MapRatioToApi(financeRate),
	}
	if ok {
		pct, dec := adapters.MapRateToApi(irr)
		resp.IRR, resp.IRRDecimal = &pct, &dec
	} else {
		zerolog.Ctx(ctx).Debug().Int("periods", series.Periods()).Msg("irr undetermined")
	}
	resp.MIRR, resp.MIRRDecimal = adapters.MapRateToApi(mirr)

	if years, found := finance.Payback(series); found {
		v := adapters.MapMoneyToApi(years)
		resp.SimplePaybackYears = &v
	}
	if years, found := finance.DiscountedPayback(series, discount); found {
		v := adapters.MapMoneyToApi(years)
		resp.DiscountedPaybackYears = &v
	}

	if req.HurdleRate != nil {
		exceeds, recommendation := finance.HurdleCheck(irr, ok, *req.HurdleRate)
		hurdle := adapters.MapRatioToApi(*req.HurdleRate)
		resp.HurdleRate = &hurdle
		resp.ExceedsHurdle = &exceeds
		resp.Recommendation = recommendation
	}

	return resp, nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
