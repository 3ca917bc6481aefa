package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates that the request was rate limited.
	ErrRateLimited = errors.New("rate limited")

	// ErrServiceUnavailable indicates that an external service is unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrMalformedResponse indicates that an external service answered with
	// content that could not be interpreted.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyResult indicates that a search succeeded but returned nothing.
	ErrEmptyResult = errors.New("empty result")

	// ErrIncompleteDocument indicates that a generated document is missing
	// a required field. It is a server-side defect, never a caller error.
	ErrIncompleteDocument = errors.New("incomplete document")
)

// ValidationError represents a validation error for a specific field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IncompleteDocumentError names the first required field a generated
// document left empty.
type IncompleteDocumentError struct {
	Field string
}

// Error implements the error interface.
func (e *IncompleteDocumentError) Error() string {
	return fmt.Sprintf("incomplete document: %s is empty", e.Field)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *IncompleteDocumentError) Unwrap() error {
	return ErrIncompleteDocument
}

// ExternalAPIError provides details about an external API error.
type ExternalAPIError struct {
	Source     string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Source, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause error, or ErrServiceUnavailable when
// no cause was recorded.
func (e *ExternalAPIError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrServiceUnavailable
}

// MalformedResponseError records content from an external service that did
// not match the expected shape.
type MalformedResponseError struct {
	Source string
	Reason string
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Source, e.Reason)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewExternalAPIError creates a new ExternalAPIError.
func NewExternalAPIError(source string, statusCode int, message string, cause error) *ExternalAPIError {
	return &ExternalAPIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}

// NewMalformedResponseError creates a new MalformedResponseError.
func NewMalformedResponseError(source, reason string) *MalformedResponseError {
	return &MalformedResponseError{
		Source: source,
		Reason: reason,
	}
}
