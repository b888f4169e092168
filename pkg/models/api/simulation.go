package api

type RandomVariable struct {
	Name         string             `json:"name"`
	Distribution string             `json:"distribution"`
	Params       map[string]float64 `json:"params"`
}

type MonteCarloRequest struct {
	Variables        []RandomVariable `json:"variables"`
	Model            string           `json:"model,omitempty"`
	Formula          string           `json:"formula,omitempty"`
	Iterations       int              `json:"iterations,omitempty"`
	ConfidenceLevels []float64        `json:"confidence_levels,omitempty"`
	Seed             *uint64          `json:"seed,omitempty"`
}

type HistogramBin struct {
	BinStart  float64 `json:"bin_start"`
	BinEnd    float64 `json:"bin_end"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

type MonteCarloResponse struct {
	Iterations          int                `json:"iterations"`
	IterationsCapped    bool               `json:"iterations_capped"`
	NonFiniteDraws      int                `json:"non_finite_draws"`
	Seed                uint64             `json:"seed"`
	Mean                float64            `json:"mean"`
	StdDev              float64            `json:"std_dev"`
	Min                 float64            `json:"min"`
	Max                 float64            `json:"max"`
	Percentiles         map[string]float64 `json:"percentiles"`
	ProbabilityPositive float64            `json:"probability_positive"`
	HistogramData       []HistogramBin     `json:"histogram_data"`
}
