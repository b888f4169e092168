package calculator

import (
	"context"

	"github.com/de-tools/plan-analytics/pkg/adapters"
	"github.com/de-tools/plan-analytics/pkg/analytics/finance"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/services/config"
)

type NPV struct {
	defaultDiscountRate float64
}

func NewNPV(cfg config.NPVConfig) *NPV {
	return &NPV{defaultDiscountRate: cfg.DefaultDiscountRate}
}

func (c *NPV) Name() string { return NameNPV }

func (c *NPV) Calculate(_ context.Context, payload []byte) (any, error) {
	var req api.NPVRequest
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
	rate := valueOr(req.DiscountRate, c.defaultDiscountRate)
	if err := requireRate("discount_rate", rate); err != nil {
		return nil, err
	}

	series := adapters.MapCashFlowSeries(req.InitialInvestment, req.CashFlows)
	npv := finance.NPV(series, rate)
	verdict := finance.Interpret(npv)

	resp := api.NPVResponse{
		NPV:                   adapters.MapMoneyToApi(npv),
		InitialInvestment:     req.InitialInvestment,
		DiscountRate:          rate,
		PresentValueBreakdown: adapters.MapBreakdownToApi(finance.Breakdown(series, rate)),
		SensitivityAnalysis:   adapters.MapRateSweepToApi(finance.RateSweep(series, rate, finance.DefaultRateOffsets)),
		Interpretation:        verdict.Interpretation,
		Recommendation:        verdict.Recommendation,
	}
	if pi, ok := finance.ProfitabilityIndex(series, rate); ok {
		v := adapters.MapRatioToApi(pi)
		resp.ProfitabilityIndex = &v
	}

	return resp, nil
}
