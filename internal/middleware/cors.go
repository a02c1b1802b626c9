package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"stars-server/internal/shared/config"
)

// corsMaxAge is how long, in seconds, browsers may cache a preflight.
const corsMaxAge = 600

type CORSMiddleware struct {
	*cors.Cors
}

// NewCORS allows credentialed requests from the frontend origin only. The
// request id header is exposed so the frontend can quote it in bug reports.
func NewCORS(cfg config.FrontendConfig) *CORSMiddleware {
	logger := slog.With("component", "cors", "operation", "setup")

	origins := []string{strings.TrimRight(cfg.URL, "/")}
	methods := []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   []string{"Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
		Debug:            cfg.CORSDebug,
	})

	logger.Info("CORS middleware configured",
		"allowed_origins", origins,
		"allowed_methods", methods,
		"debug_mode", cfg.CORSDebug)

	return &CORSMiddleware{c}
}

func (c *CORSMiddleware) Middleware(h http.Handler) http.Handler {
	return c.Cors.Handler(h)
}
