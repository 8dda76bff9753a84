package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goclickup/goclickup/internal/domain"
)

// ErrorResponse is the error body ClickUp sends with non-2xx statuses.
type ErrorResponse struct {
	Err   string `json:"err"`
	ECode string `json:"ECODE"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends an error response based on the domain error.
func Error(w http.ResponseWriter, err error) {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		domainErr = domain.NewInternalError(err)
	}

	JSON(w, mapErrorCodeToStatus(domainErr.Code), ErrorResponse{
		Err:   domainErr.Message,
		ECode: domainErr.ECode,
	})
}

// OK sends a 200 OK response with JSON body.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Empty sends a 200 OK response with an empty JSON object, which is what
// ClickUp answers to deletes.
func Empty(w http.ResponseWriter) {
	JSON(w, http.StatusOK, struct{}{})
}

func mapErrorCodeToStatus(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case domain.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
