package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

// GameMembership answers whether a player is seated in a game identified by
// its public id. Unknown games return a not-found error.
type GameMembership interface {
	IsGameMember(ctx context.Context, publicID string, playerID int) (bool, error)
}

type GameAccessMiddleware struct {
	members GameMembership
}

func NewGameAccessMiddleware(members GameMembership) *GameAccessMiddleware {
	return &GameAccessMiddleware{members: members}
}

// Require admits admins and players seated in the game named by the {id}
// path value.
func (m *GameAccessMiddleware) Require(next http.Handler) http.Handler {
	return JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "game_access",
			"method", r.Method,
			"path", r.URL.Path,
		)

		claims := GetUserFromContext(r)
		if claims == nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		if claims.IsAdmin() {
			next.ServeHTTP(w, r)
			return
		}

		gameID := r.PathValue("id")
		if gameID == "" {
			response.Error(w, r, logger, errors.Validation("game ID is required"))
			return
		}

		member, err := m.members.IsGameMember(r.Context(), gameID, claims.PlayerID)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		if !member {
			logger.Warn("Player attempted to access a game they are not seated in",
				"player_id", claims.PlayerID,
				"game_id", gameID)
			response.Error(w, r, logger, errors.Forbidden("game access required"))
			return
		}

		next.ServeHTTP(w, r)
	}))
}
