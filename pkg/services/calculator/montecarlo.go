package calculator

import (
	"context"
	"time"

	"github.com/de-tools/plan-analytics/pkg/adapters"
	"github.com/de-tools/plan-analytics/pkg/analytics/montecarlo"
	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/services/config"
	"github.com/rs/zerolog"
)

type MonteCarlo struct {
	engine *montecarlo.Engine
}

func NewMonteCarlo(cfg config.MonteCarloConfig) *MonteCarlo {
	return &MonteCarlo{engine: montecarlo.NewEngine(montecarlo.Settings{
		MaxIterations:     cfg.MaxIterations,
		DefaultIterations: cfg.DefaultIterations,
		HistogramBins:     cfg.HistogramBins,
		Workers:           cfg.Workers,
		ChunkSize:         cfg.ChunkSize,
	})}
}

func (c *MonteCarlo) Name() string { return NameMonteCarlo }

func (c *MonteCarlo) Calculate(ctx context.Context, payload []byte) (any, error) {
	var req api.MonteCarloRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	if len(req.Variables) == 0 {
		return nil, invalid("variables is required and must not be empty")
	}
	if req.Iterations < 0 {
		return nil, invalid("iterations must not be negative")
	}

	start := time.Now()
	res, err := c.engine.Run(ctx, adapters.MapMonteCarloRequest(req))
	if err != nil {
		return nil, classify(err)
	}

	logger := zerolog.Ctx(ctx)
	if res.Capped {
		logger.Warn().Int("requested", req.Iterations).Int("iterations", res.Iterations).Msg("iterations capped")
	}
	if res.NonFiniteDraws > 0 {
		logger.Warn().Int("non_finite_draws", res.NonFiniteDraws).Msg("non-finite outcomes left out of summary")
	}
	logger.Debug().
		Int("iterations", res.Iterations).
		Int("variables", len(req.Variables)).
		Dur("elapsed", time.Since(start)).
		Msg("simulation finished")

	return adapters.MapMonteCarloResultToApi(res), nil
}
