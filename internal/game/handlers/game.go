package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"stars-server/internal/game"
	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

// GameService is the part of game.Service the HTTP layer calls.
type GameService interface {
	CreateGame(ctx context.Context, cfg game.GameConfig) (*game.Game, error)
	ListGames(ctx context.Context) ([]game.Game, error)
	GetGame(ctx context.Context, publicID string) (*game.Game, error)
	GetGameState(ctx context.Context, publicID string) (*game.GameState, error)
	DeleteGame(ctx context.Context, publicID string) error
}

type GameHandler struct {
	service GameService
}

func NewGameHandler(service GameService) *GameHandler {
	return &GameHandler{service: service}
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_game")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var cfg game.GameConfig
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	createdGame, err := h.service.CreateGame(ctx, cfg)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, createdGame)
}

func (h *GameHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_games")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	games, err := h.service.ListGames(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if games == nil {
		games = []game.Game{}
	}

	response.Success(w, http.StatusOK, games)
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_game")

	g, err := h.service.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, g)
}

func (h *GameHandler) GetGameState(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_game_state")

	state, err := h.service.GetGameState(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, state)
}

func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_game")

	if r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	if err := h.service.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
