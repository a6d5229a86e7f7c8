package chart

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every birth-input validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError records one rejected BirthInput field.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

// Error returns a message naming the field, its value and the constraint.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidInput for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Steps of the chart computation named in BodyError.
const (
	StepPosition  = "ephemeris.position"
	StepAscendant = "ephemeris.ascendant"
	StepKetu      = "derive.ketu"
)

// BodyError records why one chart key is unavailable. It wraps the
// ephemeris error, so errors.Is(err, ephemeris.ErrUnavailable) holds.
type BodyError struct {
	Body Body
	Step string
	Err  error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("chart: %s: %s: %v", e.Step, e.Body, e.Err)
}

// Unwrap returns the underlying error.
func (e *BodyError) Unwrap() error {
	return e.Err
}
