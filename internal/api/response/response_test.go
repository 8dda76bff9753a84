package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goclickup/goclickup/internal/domain"
)

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantECode string
	}{
		{"not found", domain.NewNotFoundError("Task", "x"), http.StatusNotFound, "ITEM_013"},
		{"unauthorized", domain.NewInvalidTokenError(), http.StatusUnauthorized, "OAUTH_019"},
		{"validation", domain.NewValidationError("bad"), http.StatusBadRequest, "INPUT_005"},
		{"rate limited", domain.NewRateLimitedError(), http.StatusTooManyRequests, "APP_002"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "APP_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Error(rr, tt.err)

			if rr.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rr.Code)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.ECode != tt.wantECode {
				t.Errorf("expected ECODE %s, got %s", tt.wantECode, body.ECode)
			}
			if body.Err == "" {
				t.Error("expected err message")
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	rr := httptest.NewRecorder()
	Empty(rr)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if got := rr.Body.String(); got != "{}\n" {
		t.Errorf("expected empty object, got %q", got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
}
