package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"stars-server/internal/shared/utils"
	"stars-server/internal/universe"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Auth      AuthConfig
	OAuth     OAuthConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Universe  UniverseConfig
	Admin     AdminConfig
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	PlanetSummaryTTL time.Duration
}

type ServerConfig struct {
	Port            string
	URL             string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	CookieSecure    bool
	CookieSameSite  string
}

type OAuthConfig struct {
	Google ProviderConfig
	GitHub ProviderConfig
}

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func (p ProviderConfig) Configured() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// UniverseConfig holds the defaults applied to game-creation requests that
// leave a setting out.
type UniverseConfig struct {
	DefaultSize             string
	DefaultDensity          string
	DefaultClumping         bool
	DefaultStartingDistance string
	GenerationAttempts      int
	MaxPlayers              int
}

type AdminConfig struct {
	Email       string
	Username    string
	DisplayName string
}

// GlobalConfig is set once by Init, before the server starts.
var GlobalConfig *Config

// Init loads .env (if present) and the environment into GlobalConfig.
func Init() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}

	config, err := load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func seconds(key string, def int) time.Duration {
	return time.Duration(utils.GetEnvInt(key, def)) * time.Second
}

func minutes(key string, def int) time.Duration {
	return time.Duration(utils.GetEnvInt(key, def)) * time.Minute
}

func load() (*Config, error) {
	rps, err := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS_PER_SECOND must be a number: %w", err)
	}

	environment := utils.GetEnv("ENVIRONMENT", "development")
	production := environment == "production"
	serverURL := utils.GetEnv("SERVER_URL", "http://localhost:8080")
	logFormat := utils.GetEnv("LOG_FORMAT", "text")

	return &Config{
		Server: ServerConfig{
			Port:            utils.GetEnv("SERVER_PORT", "8080"),
			URL:             serverURL,
			Environment:     environment,
			ReadTimeout:     seconds("SERVER_READ_TIMEOUT_SECONDS", 15),
			WriteTimeout:    seconds("SERVER_WRITE_TIMEOUT_SECONDS", 60),
			IdleTimeout:     seconds("SERVER_IDLE_TIMEOUT_SECONDS", 60),
			ShutdownTimeout: seconds("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30),
		},
		Database: DatabaseConfig{
			Host:            utils.GetEnv("DB_HOST", "localhost"),
			Port:            utils.GetEnv("DB_PORT", "5432"),
			User:            utils.GetEnv("DB_USER", "postgres"),
			Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
			Name:            utils.GetEnv("DB_NAME", "stars"),
			SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: minutes("DB_CONN_MAX_LIFETIME_MINUTES", 5),
			MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", ""),
		},
		Redis: RedisConfig{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", true),
			URL:      utils.GetEnv("REDIS_URL", ""),
			Host:     utils.GetEnv("REDIS_HOST", "localhost"),
			Port:     utils.GetEnv("REDIS_PORT", "6379"),
			Password: utils.GetEnv("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			PlanetSummaryTTL: minutes("CACHE_PLANET_SUMMARY_TTL_MINUTES", 60),
		},
		Auth: AuthConfig{
			JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
			TokenExpiration: time.Duration(utils.GetEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
			CookieSecure:    production,
			CookieSameSite:  utils.GetEnv("COOKIE_SAME_SITE", "lax"),
		},
		OAuth: OAuthConfig{
			Google: ProviderConfig{
				ClientID:     utils.GetEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: utils.GetEnv("GOOGLE_CLIENT_SECRET", ""),
				RedirectURL:  serverURL + "/auth/google/callback",
				Scopes:       []string{"openid", "profile", "email"},
			},
			GitHub: ProviderConfig{
				ClientID:     utils.GetEnv("GITHUB_CLIENT_ID", ""),
				ClientSecret: utils.GetEnv("GITHUB_CLIENT_SECRET", ""),
				RedirectURL:  serverURL + "/auth/github/callback",
				Scopes:       []string{"read:user", "user:email"},
			},
		},
		Frontend: FrontendConfig{
			URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
			CORSDebug: utils.GetEnvBool("CORS_DEBUG", false),
		},
		Logging: LoggingConfig{
			Level:      utils.GetEnv("LOG_LEVEL", "debug"),
			Format:     logFormat,
			JSONFormat: production || logFormat == "json",
		},
		RateLimit: RateLimitConfig{
			Enabled:           utils.GetEnvBool("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: rps,
			BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
			TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
		},
		Universe: UniverseConfig{
			DefaultSize:             utils.GetEnv("UNIVERSE_DEFAULT_SIZE", "small"),
			DefaultDensity:          utils.GetEnv("UNIVERSE_DEFAULT_DENSITY", "normal"),
			DefaultClumping:         utils.GetEnvBool("UNIVERSE_DEFAULT_CLUMPING", false),
			DefaultStartingDistance: utils.GetEnv("UNIVERSE_DEFAULT_STARTING_DISTANCE", "moderate"),
			GenerationAttempts:      utils.GetEnvInt("UNIVERSE_GENERATION_ATTEMPTS", 3),
			MaxPlayers:              utils.GetEnvInt("UNIVERSE_MAX_PLAYERS", universe.MaxPlayers),
		},
		Admin: AdminConfig{
			Email:       utils.GetEnv("ADMIN_EMAIL", "admin@localhost"),
			Username:    utils.GetEnv("ADMIN_USERNAME", "admin"),
			DisplayName: utils.GetEnv("ADMIN_DISPLAY_NAME", "Admin"),
		},
	}, nil
}

// validate reports every problem at once so a misconfigured deployment can
// be fixed in one pass.
func (c *Config) validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Auth.JWTSecret != "", "JWT_SECRET is required")
	check(c.Auth.JWTSecret == "" || len(c.Auth.JWTSecret) >= 32, "JWT_SECRET must be at least 32 characters long")
	check(c.Server.Port != "", "SERVER_PORT is required")
	check(c.Server.URL != "", "SERVER_URL is required")
	check(c.Database.Host != "", "DB_HOST is required")
	check(c.Database.Name != "", "DB_NAME is required")

	if _, err := universe.ParseSizeClass(c.Universe.DefaultSize); err != nil {
		errs = append(errs, fmt.Errorf("UNIVERSE_DEFAULT_SIZE: %w", err))
	}
	if _, err := universe.ParseDensityClass(c.Universe.DefaultDensity); err != nil {
		errs = append(errs, fmt.Errorf("UNIVERSE_DEFAULT_DENSITY: %w", err))
	}
	if _, err := universe.ParseStartingDistance(c.Universe.DefaultStartingDistance); err != nil {
		errs = append(errs, fmt.Errorf("UNIVERSE_DEFAULT_STARTING_DISTANCE: %w", err))
	}
	check(c.Universe.GenerationAttempts >= 1, "UNIVERSE_GENERATION_ATTEMPTS must be at least 1")
	check(c.Universe.MaxPlayers >= 1 && c.Universe.MaxPlayers <= universe.MaxPlayers,
		"UNIVERSE_MAX_PLAYERS must be between 1 and %d", universe.MaxPlayers)

	return errors.Join(errs...)
}
