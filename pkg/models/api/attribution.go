package api

type AttributionRequest struct {
	ConversionPaths      [][]string         `json:"conversion_paths"`
	ChannelCosts         map[string]float64 `json:"channel_costs,omitempty"`
	RevenuePerConversion *float64           `json:"revenue_per_conversion,omitempty"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type PathAnalysis struct {
	TotalPaths       int            `json:"total_paths"`
	UniqueChannels   int            `json:"unique_channels"`
	AvgPathLength    float64        `json:"avg_path_length"`
	SingleTouchPaths int            `json:"single_touch_paths"`
	MultiTouchPaths  int            `json:"multi_touch_paths"`
	ChannelFrequency map[string]int `json:"channel_frequency"`
	TopPaths         []PathCount    `json:"top_paths"`
	DroppedChannels  []string       `json:"dropped_channels,omitempty"`
}

type AttributionResponse struct {
	ShapleyValues      map[string]float64  `json:"shapley_values"`
	IncrementalRevenue map[string]float64  `json:"incremental_revenue"`
	MarginalROAS       map[string]*float64 `json:"marginal_roas"`
	PathAnalysis       PathAnalysis        `json:"path_analysis"`
}
