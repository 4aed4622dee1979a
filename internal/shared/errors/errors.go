// Package errors provides application-level error types and utilities.
// It defines the stable error kinds surfaced by the API: validation, not
// found, conflict, authorization, consent, state, and chain errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation_error"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeConflict         ErrorType = "conflict"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeConsentMissing   ErrorType = "consent_missing"
	ErrorTypeStateInvalid     ErrorType = "state_invalid"
	ErrorTypeGone             ErrorType = "gone"
	ErrorTypeTransient        ErrorType = "transient"
	ErrorTypeChainUnavailable ErrorType = "chain_unavailable"
	ErrorTypeChainBroken      ErrorType = "chain_broken"
	ErrorTypeInternal         ErrorType = "internal_error"
	ErrorTypeBadRequest       ErrorType = "bad_request"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details...)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details...)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details...)
}

// NewConsentMissingError creates an error for operations attempted without
// the required consent grant. Distinct from Forbidden so clients can route
// the user to the consent screen.
func NewConsentMissingError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConsentMissing, http.StatusForbidden, message, details...)
}

// NewStateInvalidError creates an error for illegal state transitions.
func NewStateInvalidError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeStateInvalid, http.StatusUnprocessableEntity, message, details...)
}

// NewGoneError creates an error for records removed by right-to-erasure.
func NewGoneError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeGone, http.StatusGone, message, details...)
}

// NewTransientError creates a retryable error for DB or network failures.
func NewTransientError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTransient, http.StatusServiceUnavailable, message, details...)
}

// NewChainUnavailableError creates an error for an unreachable anchor chain.
// Off-chain flow continues; anchor jobs stay queued.
func NewChainUnavailableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeChainUnavailable, http.StatusServiceUnavailable, message, details...)
}

// NewChainBrokenError creates an error for audit chain verification failure.
func NewChainBrokenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeChainBroken, http.StatusInternalServerError, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsConsentMissingError checks if the error is a consent missing error
func IsConsentMissingError(err error) bool {
	return isType(err, ErrorTypeConsentMissing)
}

// IsStateInvalidError checks if the error is a state invalid error
func IsStateInvalidError(err error) bool {
	return isType(err, ErrorTypeStateInvalid)
}

// IsTransientError checks if the error is retryable
func IsTransientError(err error) bool {
	return isType(err, ErrorTypeTransient)
}

// IsChainUnavailableError checks if the error indicates an unreachable chain
func IsChainUnavailableError(err error) bool {
	return isType(err, ErrorTypeChainUnavailable)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// SQLite unique violation
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	return false
}
