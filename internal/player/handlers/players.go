package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"stars-server/internal/player"
	"stars-server/internal/shared/response"
)

type PlayerLister interface {
	GetAllPlayers(ctx context.Context) ([]player.Player, error)
}

// PlayersHandler lists public player profiles.
type PlayersHandler struct {
	players PlayerLister
}

func NewPlayersHandler(players PlayerLister) *PlayersHandler {
	return &PlayersHandler{players: players}
}

func (h *PlayersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "players", "remote_addr", r.RemoteAddr)
	logger.Debug("Players list requested")

	players, err := h.players.GetAllPlayers(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, player.Profiles(players))
	logger.Debug("Players list completed", "player_count", len(players))
}
