package api

type Initiative struct {
	Name       string  `json:"name"`
	Reach      float64 `json:"reach"`
	Impact     float64 `json:"impact"`
	Confidence float64 `json:"confidence"`
	Effort     float64 `json:"effort"`
}

// RICEWeights overrides individual default weights; omitted fields keep
// their defaults.
type RICEWeights struct {
	Reach      *float64 `json:"reach,omitempty"`
	Impact     *float64 `json:"impact,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Effort     *float64 `json:"effort,omitempty"`
}

type PrioritizationRequest struct {
	Initiatives []Initiative `json:"initiatives"`
	Weights     *RICEWeights `json:"weights,omitempty"`
}

type RankedInitiative struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Reach      float64 `json:"reach"`
	Impact     float64 `json:"impact"`
	Confidence float64 `json:"confidence"`
	Effort     float64 `json:"effort"`
	RICEScore  float64 `json:"rice_score"`
}

type RICESensitivity struct {
	AverageChangePercent map[string]float64 `json:"average_change_percent"`
	MostSensitiveFactor  string             `json:"most_sensitive_factor"`
}

type Recommendation struct {
	Type        string   `json:"type"`
	Message     string   `json:"message"`
	Initiatives []string `json:"initiatives,omitempty"`
}

type PrioritizationSummary struct {
	TotalInitiatives int     `json:"total_initiatives"`
	AverageScore     float64 `json:"average_score"`
	MedianScore      float64 `json:"median_score"`
	MaxScore         float64 `json:"max_score"`
	MinScore         float64 `json:"min_score"`
	TotalEffort      float64 `json:"total_effort"`
}

type PrioritizationResponse struct {
	RankedInitiatives   []RankedInitiative    `json:"ranked_initiatives"`
	SensitivityAnalysis RICESensitivity       `json:"sensitivity_analysis"`
	Recommendations     []Recommendation      `json:"recommendations"`
	Summary             PrioritizationSummary `json:"summary"`
}
