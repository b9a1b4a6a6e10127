package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pdf-validator/internal/domain"
	apperrors "pdf-validator/pkg/errors"
)

type contextKey string

const (
	userContextKey      contextKey = "user"
	tokenContextKey     contextKey = "token"
	requestIDContextKey contextKey = "request_id"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// GetRequestIDFromContext extracts the request ID set by RequestLogger
func GetRequestIDFromContext(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDContextKey).(string)
	return id, ok
}

// writeError writes an error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeAppError writes err with the status of its AppError type. Internal,
// upstream and untyped failures are logged; client errors are not.
func writeAppError(w http.ResponseWriter, logger domain.Logger, err error) {
	status := apperrors.GetStatusCode(err)
	message := http.StatusText(status)

	var appErr *apperrors.AppError
	typed := errors.As(err, &appErr)
	if typed {
		message = appErr.Message
	}
	if logger != nil && (!typed || apperrors.IsType(err, apperrors.ErrorTypeInternal) || apperrors.IsType(err, apperrors.ErrorTypeNetwork)) {
		logger.Error("Request failed", err, "status", status)
	}
	writeError(w, status, message)
}
