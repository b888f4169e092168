package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/de-tools/plan-analytics/pkg/models/api"
	"github.com/de-tools/plan-analytics/pkg/services/calculator"
	"github.com/rs/zerolog"
)

const (
	maxBodyBytes = 1 << 20 // 1 MiB

	// InternalErrorMessage is the only detail a client sees for 5xx failures.
	InternalErrorMessage = "Internal server error"
)

type Handler struct {
	registry calculator.Registry
}

func NewHandler(registry calculator.Registry) *Handler {
	return &Handler{registry: registry}
}

// Calculate returns a handler that runs the named calculator over the
// request body.
func (h *Handler) Calculate(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := zerolog.Ctx(ctx).With().Str("calculator", name).Logger()

		calc, err := h.registry.Get(name)
		if err != nil {
			RespondError(w, r, http.StatusInternalServerError, err)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				RespondError(w, r, http.StatusBadRequest, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
				return
			}
			RespondError(w, r, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err))
			return
		}

		result, err := calc.Calculate(logger.WithContext(ctx), body)
		if err != nil {
			if calculator.IsValidation(err) {
				logger.Debug().Err(err).Msg("rejected request")
				RespondError(w, r, http.StatusBadRequest, err)
				return
			}
			RespondError(w, r, http.StatusInternalServerError, err)
			return
		}

		RespondJSON(w, r, http.StatusOK, result)
	}
}

func (h *Handler) ListCalculators(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, r, http.StatusOK, api.CalculatorList{Calculators: h.registry.List()})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, r, http.StatusOK, api.HealthResponse{Status: "ok"})
}

func RespondJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

// RespondError writes {"error": ...}. Client errors carry their message;
// server errors are logged and replaced by InternalErrorMessage.
func RespondError(w http.ResponseWriter, r *http.Request, code int, err error) {
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", code).
			Msg("request failed")
		msg = InternalErrorMessage
	}
	RespondJSON(w, r, code, api.ErrorResponse{Error: msg})
}
