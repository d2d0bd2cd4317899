package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced to callers. Controllers map these onto the API
// error envelope.
var (
	// ErrOrderNotFound indicates the referenced order does not exist in the
	// Orders sheet.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvoiceNotFound indicates the referenced invoice does not exist in
	// the InvoiceLogs sheet.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrRowNotFound indicates a keyed update addressed a row that is not
	// present in the target sheet.
	ErrRowNotFound = errors.New("row not found")

	// ErrVerificationFailed indicates the payment gateway declined the
	// transaction or returned a non-success status.
	ErrVerificationFailed = errors.New("payment verification failed")
)

// ValidationError reports missing or malformed required fields. It is raised
// before any external call is made, so a rejected request performs no writes.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// NewValidationError builds a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// UpstreamError wraps a failure from one of the external collaborators with
// the service name attached.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(service string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Service: service, Err: err}
}
