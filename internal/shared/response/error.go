package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"stars-server/internal/shared/errors"
)

// requestIDHeader matches the header set by the request id middleware.
const requestIDHeader = "X-Request-ID"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// Error logs err and writes it to the client. Handlers and middleware report
// failures only through here.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ErrorWithMessage(w, r, logger, err, errors.PublicMessage(err))
}

// ErrorWithMessage is Error with a client message chosen by the caller.
func ErrorWithMessage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, clientMessage string) {
	errorType := errors.GetType(err)
	status := StatusCode(errorType)
	requestID := w.Header().Get(requestIDHeader)

	logError(logger, r, err, errorType, status, requestID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:     string(errorType),
		Message:   clientMessage,
		Code:      status,
		RequestID: requestID,
	})
}

// StatusCode maps an error type to its HTTP status.
func StatusCode(errorType errors.ErrorType) int {
	switch errorType {
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeValidation:
		return http.StatusBadRequest
	case errors.ErrorTypeConflict:
		return http.StatusConflict
	case errors.ErrorTypeUnprocessable:
		return http.StatusUnprocessableEntity
	case errors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrorTypeForbidden:
		return http.StatusForbidden
	case errors.ErrorTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrorTypeTooManyRequests:
		return http.StatusTooManyRequests
	case errors.ErrorTypeExternal:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(logger *slog.Logger, r *http.Request, err error, errorType errors.ErrorType, status int, requestID string) {
	l := logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", status,
	)
	if requestID != "" {
		l = l.With("request_id", requestID)
	}

	switch errorType {
	case errors.ErrorTypeNotFound, errors.ErrorTypeValidation, errors.ErrorTypeUnprocessable, errors.ErrorTypeMethodNotAllowed:
		l.Debug("Request rejected", "error", err)
	case errors.ErrorTypeUnauthorized, errors.ErrorTypeForbidden, errors.ErrorTypeTooManyRequests:
		l.Warn("Request refused", "error", err)
	case errors.ErrorTypeConflict:
		l.Info("Conflict error", "error", err)
	case errors.ErrorTypeExternal:
		l.Error("External service error", "error", err)
	default:
		l.Error("Internal server error", "error", err)
	}
}

// Success writes data as a JSON body with the given status.
func Success(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
