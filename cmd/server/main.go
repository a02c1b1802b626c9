package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stars-server/internal/auth"
	"stars-server/internal/game"
	"stars-server/internal/middleware"
	"stars-server/internal/planet"
	"stars-server/internal/player"
	"stars-server/internal/race"
	"stars-server/internal/server"
	serverHandlers "stars-server/internal/server/handlers"
	"stars-server/internal/shared/config"
	"stars-server/internal/shared/database"
	"stars-server/internal/shared/logger"
	"stars-server/internal/shared/redis"
	"stars-server/internal/universe"
	"stars-server/migrations"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(config.GlobalConfig.Logging)

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	var schema fs.FS = migrations.FS
	if cfg.Database.MigrationsPath != "" {
		schema = os.DirFS(cfg.Database.MigrationsPath)
	}
	if err := db.RunMigrations(ctx, schema); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	var (
		summaryCache game.SummaryCache = game.NoopSummaryCache{}
		states       auth.StateStore   = auth.NewMemoryStateStore()
		cachePinger  serverHandlers.Pinger
	)
	if rdb != nil {
		summaryCache = game.NewRedisSummaryCache(rdb.Client, cfg.Cache.PlanetSummaryTTL, slog.Default())
		states = auth.NewRedisStateStore(rdb.Client)
		cachePinger = rdb
	}

	races, err := race.Default()
	if err != nil {
		return err
	}

	if err := universe.DefaultDensities.Validate(); err != nil {
		return err
	}
	generator := universe.NewGenerator(universe.DefaultDensities, planet.DefaultArchetype, slog.Default())

	playerService := player.NewService(player.NewRepository(db), cfg.Admin, slog.Default())
	authService := auth.NewService(auth.NewRepository(db), slog.Default())
	gameRepo := game.NewRepository(db, slog.Default())
	gameService := game.NewService(gameRepo, summaryCache, generator, races, cfg.Universe, slog.Default())

	routes := server.NewRoutes(
		serverHandlers.NewHealthHandler(db, cachePinger),
		playerService,
		authService,
		gameService,
		gameRepo,
		races,
		auth.InitOAuth(),
		states,
		slog.Default(),
	)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()
	cors := middleware.NewCORS(cfg.Frontend)

	var handler http.Handler = routes.Setup()
	handler = cors.Middleware(handler)
	handler = rateLimiter.Middleware(handler)
	handler = middleware.RequestID(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Stars! server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"cache_enabled", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
