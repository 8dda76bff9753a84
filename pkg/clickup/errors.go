package clickup

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure behind an *Error.
type ErrorCode string

const (
	ErrCodeConfiguration   ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"
	ErrCodeMissingClient   ErrorCode = "MISSING_CLIENT"
	ErrCodeLookupFailure   ErrorCode = "LOOKUP_FAILURE"
	ErrCodeRemote          ErrorCode = "REMOTE_ERROR"
	ErrCodeMissingParent   ErrorCode = "MISSING_PARENT"
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Kind returns the short name used when the error is printed.
func (c ErrorCode) Kind() string {
	switch c {
	case ErrCodeConfiguration:
		return "ConfigurationError"
	case ErrCodeRateLimited:
		return "RateLimited"
	case ErrCodeMissingClient:
		return "MissingClient"
	case ErrCodeLookupFailure:
		return "LookupFailure"
	case ErrCodeRemote:
		return "RemoteError"
	case ErrCodeMissingParent:
		return "MissingParent"
	case ErrCodeInvalidArgument:
		return "InvalidArgument"
	default:
		return string(c)
	}
}

// Description is the one-line explanation of the error kind.
func (c ErrorCode) Description() string {
	switch c {
	case ErrCodeConfiguration:
		return "the client is not configured correctly"
	case ErrCodeRateLimited:
		return "request received a 429 - you are currently rate limited"
	case ErrCodeMissingClient:
		return "no client set for this object"
	case ErrCodeLookupFailure:
		return "no matching resource was found"
	case ErrCodeRemote:
		return "the ClickUp API returned an error"
	case ErrCodeMissingParent:
		return "object has no parent reference to navigate"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by the SDK.
type Error struct {
	Code ErrorCode
	// Message is optional extra context.
	Message string
	// StatusCode is the HTTP status for rate-limit and remote errors.
	StatusCode int
	Context    map[string]interface{}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%s]: %s", e.Code.Kind(), e.Code.Description())
	}
	return fmt.Sprintf("[%s]: %s | extra info: %q", e.Code.Kind(), e.Code.Description(), e.Message)
}

// IsConfigurationError returns true for a missing token or an unsupported API version.
func IsConfigurationError(err error) bool {
	return hasErrorCode(err, ErrCodeConfiguration)
}

// IsRateLimited returns true if the API answered with HTTP 429.
func IsRateLimited(err error) bool {
	return hasErrorCode(err, ErrCodeRateLimited)
}

// IsMissingClient returns true if a model without a client tried to call the API.
func IsMissingClient(err error) bool {
	return hasErrorCode(err, ErrCodeMissingClient)
}

// IsLookupFailure returns true if a lookup by id or field found nothing.
func IsLookupFailure(err error) bool {
	return hasErrorCode(err, ErrCodeLookupFailure)
}

// IsRemoteError returns true for non-2xx responses and undecodable bodies.
func IsRemoteError(err error) bool {
	return hasErrorCode(err, ErrCodeRemote)
}

// IsMissingParent returns true if navigation to a parent object failed.
func IsMissingParent(err error) bool {
	return hasErrorCode(err, ErrCodeMissingParent)
}

// IsInvalidArgument returns true if an argument was rejected before any request was made.
func IsInvalidArgument(err error) bool {
	return hasErrorCode(err, ErrCodeInvalidArgument)
}

func hasErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

func newConfigurationError(msg string) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: msg}
}

func newRateLimitedError(url string) *Error {
	return &Error{
		Code:       ErrCodeRateLimited,
		StatusCode: 429,
		Context:    map[string]interface{}{"url": url},
	}
}

func newMissingClientError(object string) *Error {
	return &Error{Code: ErrCodeMissingClient, Message: object}
}

func newLookupError(msg string) *Error {
	return &Error{Code: ErrCodeLookupFailure, Message: msg}
}

func newMissingParentError(msg string) *Error {
	return &Error{Code: ErrCodeMissingParent, Message: msg}
}

func newInvalidArgumentError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: msg}
}

func newRemoteError(statusCode int, msg string, ctx map[string]interface{}) *Error {
	return &Error{
		Code:       ErrCodeRemote,
		Message:    msg,
		StatusCode: statusCode,
		Context:    ctx,
	}
}
