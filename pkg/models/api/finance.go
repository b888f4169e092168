package api

type IRRRequest struct {
	InitialInvestment float64   `json:"initial_investment"`
	CashFlows         []float64 `json:"cash_flows"`
	ReinvestmentRate  *float64  `json:"reinvestment_rate,omitempty"`
	FinanceRate       *float64  `json:"finance_rate,omitempty"`
	HurdleRate        *float64  `json:"hurdle_rate,omitempty"`
	DiscountRate      *float64  `json:"discount_rate,omitempty"`
}

// IRRResponse reports rates both as percentages and as decimals. A nil IRR or
// payback means the value could not be determined from the series.
type IRRResponse struct {
	IRR                    *float64 `json:"irr"`
	IRRDecimal             *float64 `json:"irr_decimal"`
	MIRR                   float64  `json:"mirr"`
	MIRRDecimal            float64  `json:"mirr_decimal"`
	SimplePaybackYears     *float64 `json:"simple_payback_years"`
	DiscountedPaybackYears *float64 `json:"discounted_payback_years"`
	ReinvestmentRateUsed   float64  `json:"reinvestment_rate_used"`
	FinanceRateUsed        float64  `json:"finance_rate_used"`
	HurdleRate             *float64 `json:"hurdle_rate,omitempty"`
	ExceedsHurdle          *bool    `json:"exceeds_hurdle,omitempty"`
	Recommendation         string   `json:"recommendation,omitempty"`
}

type NPVRequest struct {
	InitialInvestment float64   `json:"initial_investment"`
	CashFlows         []float64 `json:"cash_flows"`
	DiscountRate      *float64  `json:"discount_rate,omitempty"`
}

type PresentValueItem struct {
	Period         int     `json:"period"`
	CashFlow       float64 `json:"cash_flow"`
	DiscountFactor float64 `json:"discount_factor"`
	PresentValue   float64 `json:"present_value"`
}

type NPVResponse struct {
	NPV                   float64            `json:"npv"`
	InitialInvestment     float64            `json:"initial_investment"`
	DiscountRate          float64            `json:"discount_rate"`
	ProfitabilityIndex    *float64           `json:"profitability_index"`
	PresentValueBreakdown []PresentValueItem `json:"present_value_breakdown"`
	// SensitivityAnalysis maps a rate label such as "8.00%" to the NPV at
	// that rate.
	SensitivityAnalysis map[string]float64 `json:"sensitivity_analysis"`
	Interpretation      string             `json:"interpretation"`
	Recommendation      string             `json:"recommendation"`
}
