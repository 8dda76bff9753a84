package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goclickup/goclickup/internal/api/middleware"
	"github.com/goclickup/goclickup/internal/api/response"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRecovery_PanicReturns500(t *testing.T) {
	// Handler that panics
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong!")
	})

	handler := middleware.Recovery(slog.New(slog.NewTextHandler(io.Discard, nil)))(panicHandler)

	req := httptest.NewRequest("GET", "/test", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}

	var resp response.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ECode != "APP_001" {
		t.Errorf("expected ECODE 'APP_001', got %q", resp.ECode)
	}
}

func TestLogging_CapturesStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	wrapped := middleware.Logging(logger)(handler)

	req := httptest.NewRequest("GET", "/test", nil)
	rr := httptest.NewRecorder()

	wrapped.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "status=201") {
		t.Errorf("expected logged status, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "path=/test") {
		t.Errorf("expected logged path, got %q", buf.String())
	}
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		wantStatus int
		wantECode  string
	}{
		{name: "missing header", token: "pk_test", header: "", wantStatus: http.StatusUnauthorized, wantECode: "OAUTH_017"},
		{name: "wrong token", token: "pk_test", header: "pk_other", wantStatus: http.StatusUnauthorized, wantECode: "OAUTH_019"},
		{name: "matching token", token: "pk_test", header: "pk_test", wantStatus: http.StatusOK},
		{name: "any token accepted", token: "", header: "pk_anything", wantStatus: http.StatusOK},
		{name: "any token still required", token: "", header: "", wantStatus: http.StatusUnauthorized, wantECode: "OAUTH_017"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Auth(tt.token)(okHandler())

			req := httptest.NewRequest("GET", "/api/v1/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantECode == "" {
				return
			}
			var resp response.ErrorResponse
			json.NewDecoder(rr.Body).Decode(&resp)
			if resp.ECode != tt.wantECode {
				t.Errorf("expected ECODE %s, got %s", tt.wantECode, resp.ECode)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter()
	handler := limiter.Middleware(okHandler())

	status := func() int {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		return rr.Code
	}

	if got := status(); got != http.StatusOK {
		t.Errorf("expected 200 by default, got %d", got)
	}

	limiter.SetLimited(true)
	if got := status(); got != http.StatusTooManyRequests {
		t.Errorf("expected 429 while limited, got %d", got)
	}

	limiter.LimitAfter(2)
	got := []int{status(), status(), status()}
	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	limiter.SetLimited(false)
	if got := status(); got != http.StatusOK {
		t.Errorf("expected 200 after limiting is switched off, got %d", got)
	}
}

func TestRecorder(t *testing.T) {
	rec := middleware.NewRecorder()

	var seen string
	handler := rec.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
	}))

	req := httptest.NewRequest("PUT", "/api/v1/task/av1?x=1", strings.NewReader(`{"priority":2}`))
	req.Header.Set("Authorization", "pk_test")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != `{"priority":2}` {
		t.Errorf("expected body to reach the handler, got %q", seen)
	}

	reqs := rec.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 recorded request, got %d", len(reqs))
	}
	r := reqs[0]
	if r.Method != "PUT" || r.Path != "/api/v1/task/av1" || r.RawQuery != "x=1" {
		t.Errorf("unexpected recorded request %+v", r)
	}
	if string(r.Body) != `{"priority":2}` {
		t.Errorf("expected recorded body, got %q", r.Body)
	}
	if r.Header.Get("Authorization") != "pk_test" {
		t.Errorf("expected recorded header, got %q", r.Header.Get("Authorization"))
	}

	rec.Reset()
	if len(rec.Requests()) != 0 {
		t.Error("expected no requests after Reset")
	}
}
