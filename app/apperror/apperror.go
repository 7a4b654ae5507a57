// Package apperror defines the error taxonomy shared by services and
// controllers, with a mapping to HTTP status codes.
package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// AuthError represents an authentication failure (no/invalid credentials or token)
	AuthError
	// ForbiddenError represents an authorization failure (authenticated, not the owner)
	ForbiddenError
	// NotFoundError represents a missing post, comment or user
	NotFoundError
	// ValidationError represents an input validation failure or malformed id
	ValidationError
	// ConflictError represents a unique-constraint violation
	ConflictError
	// InternalError represents an unexpected store or mail failure
	InternalError
)

// AppError carries an error type, a user-facing message and an optional
// underlying error for debugging.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so errors.Is/As can inspect the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

// NewAuthError creates an AppError for authentication failures.
func NewAuthError(message string, err error) *AppError {
	return New(AuthError, message, err)
}

// NewForbiddenError creates an AppError for ownership mismatches.
func NewForbiddenError(message string, err error) *AppError {
	return New(ForbiddenError, message, err)
}

// NewNotFoundError creates an AppError for missing resources.
func NewNotFoundError(message string, err error) *AppError {
	return New(NotFoundError, message, err)
}

// NewValidationError creates an AppError for invalid input.
func NewValidationError(message string, err error) *AppError {
	return New(ValidationError, message, err)
}

// NewConflictError creates an AppError for constraint violations.
func NewConflictError(message string, err error) *AppError {
	return New(ConflictError, message, err)
}

// NewInternalError creates an AppError for unexpected failures.
func NewInternalError(message string, err error) *AppError {
	return New(InternalError, message, err)
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError reports whether err is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}

// WriteError renders err as a JSON {"error": message} response. Errors that
// are not AppErrors fall through as 500 with the raw message, matching the
// catch-all responder.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var appErr *AppError
	if errors.As(err, &appErr) {
		w.WriteHeader(appErr.StatusCode())
		json.NewEncoder(w).Encode(map[string]string{"error": appErr.Message})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
