package middleware

import (
	"net/http"
	"sync"

	"github.com/goclickup/goclickup/internal/api/response"
	"github.com/goclickup/goclickup/internal/domain"
)

// RateLimiter answers 429 on demand. It is a switch for tests, not a real
// limiter.
type RateLimiter struct {
	mu sync.Mutex
	// allowance is the number of requests still served before limiting
	// starts; negative means unlimited.
	allowance int
}

// NewRateLimiter creates a limiter that lets everything through.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{allowance: -1}
}

// SetLimited switches limiting on or off.
func (l *RateLimiter) SetLimited(limited bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limited {
		l.allowance = 0
	} else {
		l.allowance = -1
	}
}

// LimitAfter serves n more requests, then answers 429 to everything.
func (l *RateLimiter) LimitAfter(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n < 0 {
		n = 0
	}
	l.allowance = n
}

func (l *RateLimiter) allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.allowance < 0:
		return true
	case l.allowance == 0:
		return false
	default:
		l.allowance--
		return true
	}
}

// Middleware answers 429 while limiting is on.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow() {
			response.Error(w, domain.NewRateLimitedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}
