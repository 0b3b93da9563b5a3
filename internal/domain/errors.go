package domain

import (
	"errors"
	"strings"
)

// ErrDegenerateRiskScore is returned when the clamped risk score is zero (or
// not a number), which leaves the corrosion and replacement offsets undefined.
var ErrDegenerateRiskScore = errors.New("degenerate risk score")

// FieldViolation names one parameter that failed validation.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field violation found in one parameter set.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) add(field, msg string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: msg})
}

// Fields returns the offending field names in the order they were found.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Field)
	}
	return out
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "invalid parameters: " + strings.Join(parts, "; ")
}
