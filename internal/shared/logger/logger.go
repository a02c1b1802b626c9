package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"stars-server/internal/shared/config"
)

type ctxKey struct{}

// WithRequestID returns a copy of ctx whose log records carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Init installs the configured handler as the slog default.
func Init(cfg config.LoggingConfig) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, cfg)))
	slog.Debug("Logger initialized", "component", "logger", "level", cfg.Level, "json_format", cfg.JSONFormat)
}

// NewHandler builds the text or JSON handler selected by cfg. Records logged
// with a request context get a request_id attribute.
func NewHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.JSONFormat {
		h = slog.NewJSONHandler(w, opts)
	}
	return requestHandler{h}
}

type requestHandler struct {
	slog.Handler
}

func (h requestHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestHandler{h.Handler.WithAttrs(attrs)}
}

func (h requestHandler) WithGroup(name string) slog.Handler {
	return requestHandler{h.Handler.WithGroup(name)}
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelDebug
	}
	return level
}
