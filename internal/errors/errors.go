package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("resource already exists")
	// ErrNotFound is returned when a lookup by key misses.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingCredential is returned when no bearer token is supplied.
	ErrMissingCredential = errors.New("access denied, token missing")
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for well-signed tokens past their expiry.
	// It matches ErrInvalidToken under errors.Is.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)
)

// StorageError reports a failure of the underlying persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err as a StorageError for operation op.
func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Validation wraps ErrValidation with a human readable reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Storage failures keep the driver detail in the response.
func MapErrorToHTTP(err error) *HTTPError {
	var storageErr *StorageError
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusForbidden, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingCredential):
		return NewHTTPError(http.StatusForbidden, err.Error(), "MISSING_TOKEN")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusForbidden, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.As(err, &storageErr):
		httpErr := NewHTTPError(http.StatusInternalServerError, "storage failure during "+storageErr.Op, "STORAGE_ERROR")
		httpErr.Details = storageErr.Err.Error()
		return httpErr
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
