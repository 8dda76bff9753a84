package middleware

import (
	"net/http"

	"github.com/goclickup/goclickup/internal/api/response"
	"github.com/goclickup/goclickup/internal/domain"
)

// Auth rejects requests without an Authorization header. When token is
// non-empty the header must match it exactly; ClickUp tokens are sent
// without a scheme prefix.
func Auth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("Authorization")
			switch {
			case got == "":
				response.Error(w, domain.NewMissingTokenError())
				return
			case token != "" && got != token:
				response.Error(w, domain.NewInvalidTokenError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
