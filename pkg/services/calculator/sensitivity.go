package calculator

import (
	"context"

	"github.com/de-tools/plan-analytics/pkg/adapters"
	"github.com/de-tools/plan-analytics/pkg/analytics/sensitivity"
	"github.com/de-tools/plan-analytics/pkg/models/api"
)

type Sensitivity struct{}

func NewSensitivity() *Sensitivity { return &Sensitivity{} }

func (c *Sensitivity) Name() string { return NameSensitivity }

func (c *Sensitivity) Calculate(_ context.Context, payload []byte) (any, error) {
	var req api.SensitivityRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	outcome, ok := req.BaseCase[adapters.OutcomeKey]
	if !ok {
		return nil, invalid("base_case.outcome is required")
	}
	if len(req.Variables) == 0 {
		return nil, invalid("variables is required and must not be empty")
	}

	seen := make(map[string]bool, len(req.Variables))
	for i, v := range req.Variables {
		if v.Name == "" {
			return nil, invalid("variables[%d]: name is required", i)
		}
		if seen[v.Name] {
			return nil, invalid("variables[%d]: duplicate name %q", i, v.Name)
		}
		seen[v.Name] = true
	}

	vars := adapters.MapSensitivityVariables(req)
	analysis := sensitivity.Analyze(outcome, vars, sensitivity.DefaultSpiderSteps)
	return adapters.MapSensitivityAnalysisToApi(analysis), nil
}
