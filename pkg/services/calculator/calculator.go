package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Calculator names, also used as registry keys and CLI arguments.
const (
	NameIRR            = "irr"
	NameNPV            = "npv"
	NameMonteCarlo     = "monte_carlo"
	NameSensitivity    = "sensitivity"
	NameAttribution    = "attribution"
	NamePrioritization = "prioritization"
)

// Calculator runs one analysis over a JSON request body and returns the
// response value to be encoded back to the caller.
type Calculator interface {
	Name() string
	Calculate(ctx context.Context, payload []byte) (any, error)
}

// ValidationError marks a problem with the caller's input. Everything else
// returned by a Calculator is an internal failure.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Message == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// classify keeps context errors as they are and turns any other engine error
// into a ValidationError, since the engines only fail on bad input.
func classify(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if IsValidation(err) {
		return err
	}
	return &ValidationError{Err: err}
}

func decode(payload []byte, dst any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return invalid("request body is empty")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return &ValidationError{Message: "invalid JSON body", Err: err}
	}
	return nil
}

func requireFinite(field string, values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(values) == 1 {
				return invalid("%s must be a finite number", field)
			}
			return invalid("%s[%d] must be a finite number", field, i)
		}
	}
	return nil
}

// requireRate rejects rates at or below -100%, where (1+r)^t is undefined.
func requireRate(field string, r float64) error {
	if err := requireFinite(field, r); err != nil {
		return err
	}
	if r <= -1 {
		return invalid("%s must be greater than -1", field)
	}
	return nil
}
