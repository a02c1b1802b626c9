package middleware

import (
	"log/slog"
	"net/http"

	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

// adminOnly lets through requests whose claims carry the admin role. It
// expects JWTMiddleware to have run.
func adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With("middleware", "admin", "method", r.Method, "path", r.URL.Path)

		claims := GetUserFromContext(r)
		switch {
		case claims == nil:
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		case !claims.IsAdmin():
			logger.Warn("Non-admin player attempted an admin operation",
				"player_id", claims.PlayerID,
				"role", claims.Role)
			response.Error(w, r, logger, errors.Forbidden("admin access required"))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// RequireAdmin guards game creation and deletion.
func RequireAdmin(next http.Handler) http.Handler {
	return JWTMiddleware(adminOnly(next))
}
