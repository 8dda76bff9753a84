package domain

import "fmt"

// ErrorCode represents a domain error code.
type ErrorCode string

const (
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeRateLimited      ErrorCode = "RATE_LIMITED"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// DomainError is an error the fake API reports to clients. ECode is the
// ClickUp-style error code sent next to the message.
type DomainError struct {
	Code    ErrorCode
	ECode   string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewNotFoundError creates an error for a missing team, space, task, etc.
func NewNotFoundError(kind, id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		ECode:   "ITEM_013",
		Message: fmt.Sprintf("%s %s not found", kind, id),
	}
}

// NewRouteNotFoundError is returned for paths the API does not serve.
func NewRouteNotFoundError(method, path string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		ECode:   "APP_404",
		Message: fmt.Sprintf("Route not found: %s %s", method, path),
	}
}

// NewMissingTokenError is returned when no Authorization header was sent.
func NewMissingTokenError() *DomainError {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		ECode:   "OAUTH_017",
		Message: "Authorization header required",
	}
}

// NewInvalidTokenError is returned when the token does not match.
func NewInvalidTokenError() *DomainError {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		ECode:   "OAUTH_019",
		Message: "Oauth token not found",
	}
}

// NewValidationError creates a validation error.
func NewValidationError(msg string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		ECode:   "INPUT_005",
		Message: msg,
	}
}

// NewRateLimitedError creates a rate limit error.
func NewRateLimitedError() *DomainError {
	return &DomainError{
		Code:    ErrCodeRateLimited,
		ECode:   "APP_002",
		Message: "Rate limit reached",
	}
}

// NewInternalError creates an internal error.
func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInternalError,
		ECode:   "APP_001",
		Message: "An internal error occurred",
	}
}
