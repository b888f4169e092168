package api

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type CalculatorList struct {
	Calculators []string `json:"calculators"`
}
