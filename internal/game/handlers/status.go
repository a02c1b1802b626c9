package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"stars-server/internal/game"
	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

type PlayerCounter interface {
	GetPlayerCount(ctx context.Context) (int, error)
}

type ServerStatusResponse struct {
	Games       int `json:"games"`
	ActiveGames int `json:"active_games"`
	Players     int `json:"players"`
}

// ServerStatusHandler reports how many games and accounts the server holds.
type ServerStatusHandler struct {
	games   GameService
	players PlayerCounter
}

func NewServerStatusHandler(games GameService, players PlayerCounter) *ServerStatusHandler {
	return &ServerStatusHandler{games: games, players: players}
}

func (h *ServerStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "server_status")

	playerCount, err := h.players.GetPlayerCount(ctx)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to get player count", err))
		return
	}

	games, err := h.games.ListGames(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	resp := ServerStatusResponse{Games: len(games), Players: playerCount}
	for _, g := range games {
		if g.Status == game.GameStatusActive {
			resp.ActiveGames++
		}
	}

	response.Success(w, http.StatusOK, resp)
}
