package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadUniverseDefaults(t *testing.T) {
	t.Setenv("UNIVERSE_DEFAULT_SIZE", "")
	t.Setenv("UNIVERSE_DEFAULT_DENSITY", "")
	t.Setenv("UNIVERSE_DEFAULT_STARTING_DISTANCE", "")
	t.Setenv("UNIVERSE_GENERATION_ATTEMPTS", "")
	t.Setenv("UNIVERSE_MAX_PLAYERS", "")

	cfg, err := load()
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}

	u := cfg.Universe
	if u.DefaultSize != "small" || u.DefaultDensity != "normal" || u.DefaultStartingDistance != "moderate" {
		t.Errorf("Unexpected universe defaults: %+v", u)
	}
	if u.GenerationAttempts != 3 {
		t.Errorf("Expected 3 generation attempts, got %d", u.GenerationAttempts)
	}
	if u.MaxPlayers != 16 {
		t.Errorf("Expected max players 16, got %d", u.MaxPlayers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UNIVERSE_DEFAULT_SIZE", "huge")
	t.Setenv("UNIVERSE_DEFAULT_CLUMPING", "true")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS", "5")
	t.Setenv("CACHE_PLANET_SUMMARY_TTL_MINUTES", "10")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := load()
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}

	if cfg.Universe.DefaultSize != "huge" || !cfg.Universe.DefaultClumping {
		t.Errorf("Expected overridden universe settings, got %+v", cfg.Universe)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected 5s shutdown timeout, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Cache.PlanetSummaryTTL != 10*time.Minute {
		t.Errorf("Expected 10m cache TTL, got %v", cfg.Cache.PlanetSummaryTTL)
	}
	if !cfg.Logging.JSONFormat {
		t.Error("Expected JSON logging when LOG_FORMAT=json")
	}
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS_PER_SECOND", "fast")

	if _, err := load(); err == nil {
		t.Error("Expected error for non-numeric rate limit")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080", URL: "http://localhost:8080"},
			Database: DatabaseConfig{Host: "localhost", Name: "stars"},
			Auth:     AuthConfig{JWTSecret: testSecret},
			Universe: UniverseConfig{
				DefaultSize:             "small",
				DefaultDensity:          "normal",
				DefaultStartingDistance: "moderate",
				GenerationAttempts:      3,
				MaxPlayers:              16,
			},
		}
	}

	if err := valid().validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET is required"},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "at least 32"},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "DB_HOST"},
		{"unknown size", func(c *Config) { c.Universe.DefaultSize = "enormous" }, "UNIVERSE_DEFAULT_SIZE"},
		{"unknown density", func(c *Config) { c.Universe.DefaultDensity = "crowded" }, "UNIVERSE_DEFAULT_DENSITY"},
		{"unknown distance", func(c *Config) { c.Universe.DefaultStartingDistance = "far" }, "UNIVERSE_DEFAULT_STARTING_DISTANCE"},
		{"no attempts", func(c *Config) { c.Universe.GenerationAttempts = 0 }, "UNIVERSE_GENERATION_ATTEMPTS"},
		{"too many players", func(c *Config) { c.Universe.MaxPlayers = 17 }, "UNIVERSE_MAX_PLAYERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestProviderConfigured(t *testing.T) {
	if (ProviderConfig{ClientID: "id"}).Configured() {
		t.Error("Expected provider without secret to be unconfigured")
	}
	if !(ProviderConfig{ClientID: "id", ClientSecret: "secret"}).Configured() {
		t.Error("Expected provider with id and secret to be configured")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := (&Config{}).validate()
	if err == nil {
		t.Fatal("Expected empty config to be invalid")
	}
	for _, want := range []string{"JWT_SECRET is required", "SERVER_PORT", "DB_HOST", "UNIVERSE_DEFAULT_SIZE", "UNIVERSE_MAX_PLAYERS"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
	if strings.Contains(err.Error(), "at least 32") {
		t.Error("Expected a missing secret to be reported only once")
	}
}
