// ABOUTME: ValidationError type for field-level constraint violations
// ABOUTME: Every rejected record names the offending field and the constraint
package models

import "fmt"

// ValidationError reports a field value that violates a declared constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// invalid builds a ValidationError for a field.
func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// requireText checks a required string field against a maximum length.
func requireText(field, value string, max int) error {
	if value == "" {
		return invalid(field, "cannot be empty")
	}
	return limitText(field, value, max)
}

// limitText checks an optional string field against a maximum length.
func limitText(field, value string, max int) error {
	if len(value) > max {
		return invalid(field, "exceeds %d characters", max)
	}
	return nil
}
