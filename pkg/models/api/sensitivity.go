package api

type SensitivityVariable struct {
	Name              string   `json:"name"`
	Low               float64  `json:"low"`
	High              float64  `json:"high"`
	Base              *float64 `json:"base,omitempty"`
	SensitivityFactor *float64 `json:"sensitivity_factor,omitempty"`
}

// SensitivityRequest carries the base case as a free-form map. Only "outcome"
// is required; other keys provide default base values for variables.
type SensitivityRequest struct {
	BaseCase  map[string]float64    `json:"base_case"`
	Variables []SensitivityVariable `json:"variables"`
}

type TornadoEntry struct {
	Variable    string  `json:"variable"`
	BaseValue   float64 `json:"base_value"`
	LowValue    float64 `json:"low_value"`
	HighValue   float64 `json:"high_value"`
	LowOutcome  float64 `json:"low_outcome"`
	HighOutcome float64 `json:"high_outcome"`
	LowChange   float64 `json:"low_change"`
	HighChange  float64 `json:"high_change"`
	Swing       float64 `json:"swing"`
	Rank        int     `json:"rank"`
}

type SpiderPoint struct {
	PercentChange float64 `json:"percent_change"`
	Value         float64 `json:"value"`
	Outcome       float64 `json:"outcome"`
}

type SpiderSeries struct {
	Variable string        `json:"variable"`
	Points   []SpiderPoint `json:"points"`
}

type Scenarios struct {
	Optimistic  float64 `json:"optimistic"`
	Pessimistic float64 `json:"pessimistic"`
	Base        float64 `json:"base"`
}

type SensitivityResponse struct {
	BaseCaseOutcome   float64            `json:"base_case_outcome"`
	TornadoData       []TornadoEntry     `json:"tornado_data"`
	SpiderData        []SpiderSeries     `json:"spider_data"`
	CriticalVariables []string           `json:"critical_variables"`
	BreakevenPoints   map[string]float64 `json:"breakeven_points"`
	Scenarios         Scenarios          `json:"scenarios"`
}
