package schema

import (
	"fmt"
	"strings"
)

// Problems reported for a field.
const (
	ProblemRequired       = "required"
	ProblemString         = "expected string"
	ProblemBoolean        = "expected boolean"
	ProblemStringOrList   = "expected string or array of strings"
	ProblemNotNullable    = "must not be null"
	ProblemInvalidPayload = "expected object"
)

// FieldError is one violated constraint on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Problem string `json:"problem"`
}

// ValidationError lists every field of an input that failed validation.
type ValidationError struct {
	Entity string       `json:"-"`
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Problem))
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) add(field, problem string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Problem: problem})
}

// err returns e as an error, or nil when nothing was recorded.
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// RequiredField builds a ValidationError for a single missing field.
func RequiredField(entity, field string) *ValidationError {
	e := &ValidationError{Entity: entity}
	e.add(field, ProblemRequired)
	return e
}

// InvalidPayload builds a ValidationError for a body that is not a JSON object.
func InvalidPayload(entity string) *ValidationError {
	e := &ValidationError{Entity: entity}
	e.add("body", ProblemInvalidPayload)
	return e
}
