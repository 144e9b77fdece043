package middleware

import (
	"net/http"
	"strings"

	"github.com/jperaza/divvy/internal/auth"
)

// RequireSession wraps destructive handlers with the authorization gate:
// the request must carry a valid "Authorization: Bearer <token>" header
// obtained from the login endpoint.
func RequireSession(gate *auth.Gate, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			WriteError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		if err := gate.Verify(parts[1]); err != nil {
			WriteError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
