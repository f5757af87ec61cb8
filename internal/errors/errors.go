package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents application-specific error codes
type ErrorCode string

const (
	// Client errors
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// Changelog errors
	ErrCodeInvalidPattern  ErrorCode = "INVALID_PATTERN"
	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"
	ErrCodeFetchFailed     ErrorCode = "FETCH_FAILED"
	ErrCodeParseFailed     ErrorCode = "PARSE_FAILED"
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"

	// Server errors
	ErrCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getStatusCodeForError(code),
	}
}

// Wrap wraps an existing error with application context
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getStatusCodeForError(code),
		Err:        err,
	}
}

// Wrapf wraps an existing error with formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: getStatusCodeForError(code),
		Err:        err,
	}
}

// As returns the first AppError in err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err's chain contains an AppError with the given code
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// getStatusCodeForError maps error codes to HTTP status codes
func getStatusCodeForError(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed, ErrCodeInvalidPattern:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeTooManyRequests, ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeFetchFailed, ErrCodeParseFailed:
		return http.StatusBadGateway
	case ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors for convenience

// ValidationError creates a validation error
func ValidationError(message string) *AppError {
	return New(ErrCodeValidationFailed, message)
}

// InvalidRequest creates an invalid request error
func InvalidRequest(message string) *AppError {
	return New(ErrCodeInvalidRequest, message)
}

// InvalidPattern creates an error for a version pattern that cannot be compiled
func InvalidPattern(pattern string, err error) *AppError {
	return Wrapf(err, ErrCodeInvalidPattern, "Invalid version pattern: %s", pattern)
}

// RateLimited creates the wait condition raised when the API quota is exhausted.
// The reset time is carried in Details as RFC 3339.
func RateLimited(resetAt string) *AppError {
	appErr := New(ErrCodeRateLimited, "GitHub API rate-limited")
	appErr.Details = "limit released at " + resetAt
	return appErr
}

// FetchFailed creates a fetch error for a network or HTTP failure
func FetchFailed(err error) *AppError {
	return Wrap(err, ErrCodeFetchFailed, "Failed to fetch from GitHub")
}

// ParseFailed creates an error for a response body that could not be decoded
func ParseFailed(err error) *AppError {
	return Wrap(err, ErrCodeParseFailed, "Failed to parse GitHub response")
}

// SessionNotFound creates a session not found error
func SessionNotFound(id string) *AppError {
	return New(ErrCodeSessionNotFound, fmt.Sprintf("Session not found: %s", id))
}

// InternalError creates an internal server error
func InternalError(err error) *AppError {
	return Wrap(err, ErrCodeInternalError, "Internal server error")
}
