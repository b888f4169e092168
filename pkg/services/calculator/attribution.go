package calculator

import (
	"context"

	"github.com/de-tools/plan-analytics/pkg/adapters"
	"github.com/de-tools/plan-analytics/pkg/analytics/attribution"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/services/config"
	"github.com/rs/zerolog"
)

type Attribution struct {
	calc *attribution.Calculator
}

func NewAttribution(cfg config.AttributionConfig) *Attribution {
	return &Attribution{calc: attribution.NewCalculator(cfg.MaxChannels)}
}

func (c *Attribution) Name() string { return NameAttribution }

func (c *Attribution) Calculate(ctx context.Context, payload []byte) (any, error) {
	var req api.AttributionRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	if len(req.ConversionPaths) == 0 {
		return nil, invalid("conversion_paths is required and must not be empty")
	}
	if req.RevenuePerConversion != nil {
		if err := requireFinite("revenue_per_conversion", *req.RevenuePerConversion); err != nil {
			return nil, err
		}
	}

	res, err := c.calc.Attribute(adapters.MapAttributionRequest(req))
	if err != nil {
		return nil, classify(err)
	}

	if dropped := res.PathAnalysis.DroppedChannels; len(dropped) > 0 {
		zerolog.Ctx(ctx).Info().Strs("dropped", dropped).Msg("channel cap applied")
	}

	return adapters.MapAttributionResultToApi(res), nil
}
