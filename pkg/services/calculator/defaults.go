package calculator

import "github.com/de-tools/plan-analytics/pkg/services/config"

// NewDefaultRegistry registers all six calculators configured from cfg.
func NewDefaultRegistry(cfg config.EngineConfig) (Registry, error) {
	return NewRegistry(
		NewIRR(cfg.IRR),
		NewNPV(cfg.NPV),
		NewMonteCarlo(cfg.MonteCarlo),
		NewSensitivity(),
		NewAttribution(cfg.Attribution),
		NewPrioritization(cfg.Prioritization),
	)
}
