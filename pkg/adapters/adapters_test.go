package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/models/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSensitivityVariables_ResolvesBase(t *testing.T) {
	// Given
	req := api.SensitivityRequest{
		BaseCase: map[string]float64{OutcomeKey: 100, "price": 10},
		Variables: []api.SensitivityVariable{
			{Name: "explicit", Low: 0, High: 10, Base: lo.ToPtr(3.0), SensitivityFactor: lo.ToPtr(2.5)},
			{Name: "price", Low: 8, High: 14},
			{Name: "volume", Low: 100, High: 300},
		},
	}

	// When
	vars := MapSensitivityVariables(req)

	// Then
	require.Len(t, vars, 3)
	assert.Equal(t, 3.0, vars[0].Base)
	assert.Equal(t, 2.5, vars[0].Factor)
	assert.Equal(t, 10.0, vars[1].Base, "base_case entry wins over midpoint")
	assert.Equal(t, 200.0, vars[2].Base, "midpoint fallback")
	assert.Equal(t, 1.0, vars[2].Factor)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "8.00%", RateLabel(0.08))
	assert.Equal(t, "12.50%", RateLabel(0.125))
	assert.Equal(t, "p5", PercentileKey(5))
	assert.Equal(t, "p97.5", PercentileKey(97.5))
}

func TestMapRateToApi(t *testing.T) {
	pct, dec := MapRateToApi(0.15238237116630649)
	assert.Equal(t, 15.24, pct)
	assert.Equal(t, 0.152382, dec)
}

func TestMapWeights_OverlaysDefaults(t *testing.T) {
	w := MapWeights(nil)
	assert.Equal(t, 2.0, w.Impact)

	w = MapWeights(&api.RICEWeights{Impact: lo.ToPtr(1.0), Effort: lo.ToPtr(0.5)})
	assert.Equal(t, 1.0, w.Reach)
	assert.Equal(t, 1.0, w.Impact)
	assert.Equal(t, 1.0, w.Confidence)
	assert.Equal(t, 0.5, w.Effort)
}

func TestMapResponseToReport(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		response any
		title    string
		sections int
	}{
		{"IRR", api.IRRResponse{MIRR: 12}, "Internal Rate of Return", 1},
		{"NPV", api.NPVResponse{SensitivityAnalysis: map[string]float64{"8.00%": 1}}, "Net Present Value", 3},
		{"MonteCarlo", api.MonteCarloResponse{Percentiles: map[string]float64{"p95": 2, "p5": 1}}, "Monte Carlo Simulation", 2},
		{"Sensitivity", api.SensitivityResponse{}, "Sensitivity Analysis", 2},
		{"Attribution", api.AttributionResponse{ShapleyValues: map[string]float64{"A": 1}}, "Shapley Attribution", 2},
		{"Prioritization", api.PrioritizationResponse{}, "RICE Prioritization", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := MapResponseToReport("calc", tt.response, at)

			require.NoError(t, err)
			assert.Equal(t, tt.title, report.Title)
			assert.Equal(t, "calc", report.Calculator)
			assert.Equal(t, at, report.GeneratedAt)
			assert.Len(t, report.Sections, tt.sections)
		})
	}
}

func TestMapResponseToReport_IRRUndetermined(t *testing.T) {
	report, err := MapResponseToReport("irr", api.IRRResponse{}, time.Time{})
	require.NoError(t, err)

	irr, ok := lo.Find(report.Sections[0].Details, func(d domain.ReportDetail) bool { return d.Name == "IRR" })
	require.True(t, ok)
	assert.Equal(t, notDetermined, irr.Value)
}

func TestMapResponseToReport_PercentilesInOrder(t *testing.T) {
	resp := api.MonteCarloResponse{Percentiles: map[string]float64{"p95": 3, "p50": 2, "p5": 1}}

	report, err := MapResponseToReport("monte_carlo", resp, time.Time{})
	require.NoError(t, err)

	names := lo.FilterMap(report.Sections[0].Details, func(d domain.ReportDetail, _ int) (string, bool) {
		return d.Name, d.Description == "percentile"
	})
	assert.Equal(t, []string{"p5", "p50", "p95"}, names)
}

func TestMapResponseToReport_UnknownType(t *testing.T) {
	_, err := MapResponseToReport("x", struct{}{}, time.Time{})
	assert.Error(t, err)
}
