package middleware

import (
	"context"
	"net/http"
)

// RequireProfile corta con 428 mientras no exista el perfil del usuario.
// hasProfile se consulta en cada request.
func RequireProfile(hasProfile func(ctx context.Context) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasProfile(r.Context()) {
				http.Error(w, "profile required", http.StatusPreconditionRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
