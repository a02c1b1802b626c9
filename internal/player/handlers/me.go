package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"stars-server/internal/auth"
	"stars-server/internal/middleware"
	"stars-server/internal/player"
	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

type PlayerLookup interface {
	GetPlayerByID(ctx context.Context, id int) (*player.Player, error)
}

type LinkedProviderLister interface {
	LinkedProviders(ctx context.Context, playerID int) ([]auth.PlayerAuthProvider, error)
}

type MeResponse struct {
	player.Player
	Providers []string `json:"providers"`
}

// MeHandler returns the signed-in player's own account.
type MeHandler struct {
	players PlayerLookup
	links   LinkedProviderLister
}

func NewMeHandler(players PlayerLookup, links LinkedProviderLister) *MeHandler {
	return &MeHandler{players: players, links: links}
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "me")

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no user claims found in context"))
		return
	}
	logger = logger.With("player_id", claims.PlayerID)

	p, err := h.players.GetPlayerByID(r.Context(), claims.PlayerID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	links, err := h.links.LinkedProviders(r.Context(), p.ID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	resp := MeResponse{Player: *p, Providers: make([]string, 0, len(links))}
	for _, l := range links {
		resp.Providers = append(resp.Providers, l.Provider)
	}

	response.Success(w, http.StatusOK, resp)
}
