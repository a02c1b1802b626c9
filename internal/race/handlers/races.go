package handlers

import (
	"log/slog"
	"net/http"

	"stars-server/internal/planet"
	"stars-server/internal/race"
	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

type RaceResponse struct {
	race.Race
	Ideal              planet.Habitat `json:"ideal"`
	StartingPopulation int64          `json:"starting_population"`
}

type RacesHandler struct {
	registry *race.Registry
}

func NewRacesHandler(registry *race.Registry) *RacesHandler {
	return &RacesHandler{registry: registry}
}

func (h *RacesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "races")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	all := h.registry.All()
	resp := make([]RaceResponse, 0, len(all))
	for i := range all {
		resp = append(resp, RaceResponse{
			Race:               all[i],
			Ideal:              all[i].Ideal(),
			StartingPopulation: all[i].StartingPopulation(),
		})
	}

	response.Success(w, http.StatusOK, resp)
}
