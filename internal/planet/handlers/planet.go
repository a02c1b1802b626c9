package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"stars-server/internal/planet"
	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

// SummarySource looks up the planet summaries of a game by its public id.
type SummarySource interface {
	GetPlanetSummaries(ctx context.Context, gameID string) ([]planet.Summary, error)
}

type PlanetHandler struct {
	source SummarySource
}

func NewPlanetHandler(source SummarySource) *PlanetHandler {
	return &PlanetHandler{source: source}
}

func (h *PlanetHandler) GetByGameID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_planets_by_game")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	gameID := r.PathValue("id")
	if gameID == "" {
		response.Error(w, r, logger, errors.Validation("game ID is required"))
		return
	}

	planets, err := h.source.GetPlanetSummaries(ctx, gameID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if planets == nil {
		planets = []planet.Summary{}
	}

	response.Success(w, http.StatusOK, planets)
}
