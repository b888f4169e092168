package calculator

import (
	"context"

	"github.com/de-tools/plan-analytics/pkg/adapters"
	"github.com/de-tools/plan-analytics/pkg/analytics/prioritization"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/services/config"
)

type Prioritization struct {
	prioritizer *prioritization.Prioritizer
}

func NewPrioritization(cfg config.PrioritizationConfig) *Prioritization {
	return &Prioritization{prioritizer: prioritization.NewPrioritizer(prioritization.Settings{
		EffortScale:         cfg.EffortScale,
		QuickWinMaxEffort:   cfg.QuickWinMaxEffort,
		HighConfidence:      cfg.HighConfidence,
		HighConfidenceDepth: cfg.HighConfidenceDepth,
	})}
}

func (c *Prioritization) Name() string { return NamePrioritization }

func (c *Prioritization) Calculate(_ context.Context, payload []byte) (any, error) {
	var req api.PrioritizationRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	if len(req.Initiatives) == 0 {
		return nil, invalid("initiatives is required and must not be empty")
	}

	res, err := c.prioritizer.Prioritize(adapters.MapInitiatives(req.Initiatives), adapters.MapWeights(req.Weights))
	if err != nil {
		return nil, classify(err)
	}
	return adapters.MapPrioritizationResultToApi(res), nil
}
