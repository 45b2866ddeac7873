// Package domain contains the core business entities for the payments SDK.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers branch on failure category with errors.Is.
var (
	// ErrValidation is returned for bad caller input, detected before any
	// network call.
	ErrValidation = errors.New("validation error")

	// ErrAuthentication is returned when credentials are missing or do not
	// match the selected provider/environment.
	ErrAuthentication = errors.New("authentication error")

	// ErrProvider is returned for a non-2xx or malformed gateway response.
	ErrProvider = errors.New("provider error")

	// ErrTimeout is returned when the transport-level deadline expires.
	ErrTimeout = errors.New("request timeout")

	// ErrTransactionNotFound is returned when a refund lookup finds no
	// payment detail for the given transaction.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Error wraps a sentinel with additional context.
type Error struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to work with Error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation Error with the given message.
func NewValidationError(message string) *Error {
	return &Error{Err: ErrValidation, Message: message, Code: "VALIDATION_ERROR"}
}

// NewAuthenticationError creates an authentication Error with the given message.
func NewAuthenticationError(message string) *Error {
	return &Error{Err: ErrAuthentication, Message: message, Code: "AUTHENTICATION_ERROR"}
}

// NewTimeoutError creates a timeout Error.
func NewTimeoutError() *Error {
	return &Error{Err: ErrTimeout, Message: "request timed out", Code: "TIMEOUT_ERROR"}
}

// NewTransactionNotFoundError creates a not-found Error for a transaction id.
func NewTransactionNotFoundError(transactionID string) *Error {
	return &Error{
		Err:     ErrTransactionNotFound,
		Message: fmt.Sprintf("transaction %s not found", transactionID),
		Code:    "TRANSACTION_NOT_FOUND",
	}
}

// ProviderError carries the provider name and, when available, the gateway's
// HTTP status and raw response body.
type ProviderError struct {
	Provider   string
	Message    string
	StatusCode int
	Details    string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Unwrap makes ProviderError match ErrProvider with errors.Is.
func (e *ProviderError) Unwrap() error {
	return ErrProvider
}

// NewProviderError creates a ProviderError.
func NewProviderError(provider, message string, statusCode int, details string) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}
