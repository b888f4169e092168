package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/services/calculator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCalculator struct {
	mock.Mock
}

func (m *mockCalculator) Name() string {
	return m.Called().String(0)
}

func (m *mockCalculator) Calculate(ctx context.Context, payload []byte) (any, error) {
	args := m.Called(ctx, payload)
	return args.Get(0), args.Error(1)
}

func newRouter(t *testing.T, calc *mockCalculator) *chi.Mux {
	t.Helper()
	reg, err := calculator.NewRegistry(calc)
	require.NoError(t, err)

	h := NewHandler(reg)
	r := chi.NewRouter()
	r.Post("/calc", h.Calculate("stub"))
	r.Post("/missing", h.Calculate("missing"))
	r.Get("/calculators", h.ListCalculators)
	r.Get("/health", h.Health)
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestHandler_Calculate(t *testing.T) {
	tests := []struct {
		name           string
		result         any
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			result:         map[string]float64{"npv": 13723.6},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"npv":13723.6}`,
		},
		{
			name:           "ValidationError",
			err:            &calculator.ValidationError{Message: "cash_flows is required and must not be empty"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"cash_flows is required and must not be empty"}`,
		},
		{
			name:           "InternalError",
			err:            errors.New("disk on fire at /var/lib/secret"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			calc := new(mockCalculator)
			calc.On("Name").Return("stub")
			calc.On("Calculate", mock.Anything, []byte(`{"a":1}`)).Return(tt.result, tt.err)
			router := newRouter(t, calc)

			// When
			req := httptest.NewRequest(http.MethodPost, "/calc", strings.NewReader(`{"a":1}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			// Then
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			calc.AssertExpectations(t)
		})
	}
}

func TestHandler_Calculate_BodyTooLarge(t *testing.T) {
	calc := new(mockCalculator)
	calc.On("Name").Return("stub")
	router := newRouter(t, calc)

	req := httptest.NewRequest(http.MethodPost, "/calc", strings.NewReader(strings.Repeat("x", maxBodyBytes+1)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "exceeds")
	calc.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything)
}

func TestHandler_Calculate_UnknownCalculator(t *testing.T) {
	calc := new(mockCalculator)
	calc.On("Name").Return("stub")
	router := newRouter(t, calc)

	req := httptest.NewRequest(http.MethodPost, "/missing", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, InternalErrorMessage, decodeError(t, rec))
}

func TestHandler_ListAndHealth(t *testing.T) {
	calc := new(mockCalculator)
	calc.On("Name").Return("stub")
	router := newRouter(t, calc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calculators", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"calculators":["stub"]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
