package server

import (
	"log/slog"
	"net/http"

	"stars-server/internal/auth"
	authHandlers "stars-server/internal/auth/handlers"
	"stars-server/internal/game"
	gameHandlers "stars-server/internal/game/handlers"
	"stars-server/internal/middleware"
	planetHandlers "stars-server/internal/planet/handlers"
	"stars-server/internal/player"
	playerHandler "stars-server/internal/player/handlers"
	"stars-server/internal/race"
	raceHandlers "stars-server/internal/race/handlers"
	serverHandlers "stars-server/internal/server/handlers"
)

type Routes struct {
	health        *serverHandlers.HealthHandler
	playerService *player.Service
	authService   *auth.Service
	gameService   *game.Service
	members       middleware.GameMembership
	races         *race.Registry
	providers     []auth.ConfiguredProvider
	states        auth.StateStore
	logger        *slog.Logger
}

func NewRoutes(
	health *serverHandlers.HealthHandler,
	playerService *player.Service,
	authService *auth.Service,
	gameService *game.Service,
	members middleware.GameMembership,
	races *race.Registry,
	providers []auth.ConfiguredProvider,
	states auth.StateStore,
	logger *slog.Logger,
) *Routes {
	return &Routes{
		health:        health,
		playerService: playerService,
		authService:   authService,
		gameService:   gameService,
		members:       members,
		races:         races,
		providers:     providers,
		states:        states,
		logger:        logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	statusHandler := gameHandlers.NewServerStatusHandler(r.gameService, r.playerService)
	racesHandler := raceHandlers.NewRacesHandler(r.races)
	playersHandler := playerHandler.NewPlayersHandler(r.playerService)
	meHandler := playerHandler.NewMeHandler(r.playerService, r.authService)
	logoutHandler := authHandlers.NewLogoutHandler()
	gameHandler := gameHandlers.NewGameHandler(r.gameService)
	planetHandler := planetHandlers.NewPlanetHandler(r.gameService)
	gameAccess := middleware.NewGameAccessMiddleware(r.members)

	// Public endpoints
	mux.Handle("GET /api/server/health", r.health)
	mux.Handle("GET /api/server/status", statusHandler)
	mux.Handle("GET /api/races", racesHandler)
	mux.Handle("GET /api/players", playersHandler)
	mux.HandleFunc("GET /api/games", gameHandler.GetGames)
	mux.HandleFunc("GET /api/games/{id}", gameHandler.GetGame)
	mux.HandleFunc("GET /api/games/{id}/planets", planetHandler.GetByGameID)

	// Authenticated endpoints
	mux.Handle("GET /api/players/me", middleware.JWTMiddleware(meHandler))
	mux.Handle("GET /api/games/{id}/state", gameAccess.Require(http.HandlerFunc(gameHandler.GetGameState)))

	// Admin-only endpoints
	mux.Handle("POST /api/games", middleware.RequireAdmin(http.HandlerFunc(gameHandler.CreateGame)))
	mux.Handle("DELETE /api/games/{id}", middleware.RequireAdmin(http.HandlerFunc(gameHandler.DeleteGame)))

	// OAuth endpoints
	authEndpoints := []string{"/auth/logout"}
	for _, p := range r.providers {
		h := authHandlers.NewOAuthHandler(p.Provider, r.playerService, r.authService, r.states, p.Configured)
		path := "/auth/" + p.Provider.Name()
		mux.HandleFunc("GET "+path, h.HandleAuth)
		mux.HandleFunc("GET "+path+"/callback", h.HandleCallback)
		authEndpoints = append(authEndpoints, path)
	}
	mux.Handle("/auth/logout", logoutHandler)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/server/status", "/api/races", "/api/players", "/api/games", "/api/games/{id}", "/api/games/{id}/planets"},
		"protected_endpoints", []string{"/api/players/me", "/api/games/{id}/state"},
		"admin_endpoints", []string{"POST /api/games", "DELETE /api/games/{id}"},
		"auth_endpoints", authEndpoints,
	)

	return mux
}
