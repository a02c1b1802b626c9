package handlers

import (
	"log/slog"
	"net/http"

	"stars-server/internal/shared/cookies"
	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

type LogoutHandler struct{}

func NewLogoutHandler() *LogoutHandler {
	return &LogoutHandler{}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "logout")

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	cookies.ClearAuthCookie(w)
	logger.Debug("Auth cookie cleared")

	response.Success(w, http.StatusOK, map[string]string{"message": "logged out"})
}
