package models

import "fmt"

// ValidationErrorKind classifies why a payload failed entity validation.
type ValidationErrorKind string

const (
	KindMissingField ValidationErrorKind = "missing-field"
	KindTypeError    ValidationErrorKind = "type-error"
	KindOutOfRange   ValidationErrorKind = "out-of-range"
)

// ValidationError reports malformed or out-of-range product data.
// Handlers map it to a 400 response.
type ValidationError struct {
	Kind    ValidationErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid product data (%s): field %q %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("invalid product data (%s): %s", e.Kind, e.Message)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Kind: KindMissingField, Field: field, Message: "is required"}
}

func typeError(field, message string) *ValidationError {
	return &ValidationError{Kind: KindTypeError, Field: field, Message: message}
}
