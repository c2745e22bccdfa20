package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/authgate/pkg/authsdk"
	"github.com/aussiebroadwan/authgate/pkg/slogx"
)

// RequireRole lets the request through only when the identity attached by
// AuthnMiddleware carries role. It must be chained after AuthnMiddleware.
func RequireRole(role string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			if !claims.HasRole(role) {
				slogx.FromContext(r.Context()).Info("role gate rejected request",
					"user_id", claims.UserID,
					"role", claims.Role,
					"required_role", role,
				)
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
				authsdk.ErrForbidden.WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
