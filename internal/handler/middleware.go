package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pdf-validator/internal/domain"
	apperrors "pdf-validator/pkg/errors"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// AuthMiddleware validates Supabase JWT tokens
type AuthMiddleware struct {
	authService domain.AuthService
	logger      domain.Logger
}

// NewAuthMiddleware creates the bearer-token middleware
func NewAuthMiddleware(authService domain.AuthService, logger domain.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Middleware rejects requests without a valid bearer token and stores the
// user and token in the request context
func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Get token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAppError(w, m.logger, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}

		// Extract token from "Bearer <token>" format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeAppError(w, m.logger, apperrors.NewUnauthorizedError("Invalid authorization header format"))
			return
		}

		token := parts[1]
		if token == "" {
			writeAppError(w, m.logger, apperrors.NewUnauthorizedError("Token required"))
			return
		}

		user, err := m.authService.ValidateToken(token)
		if err != nil {
			m.logger.Error("Token validation failed", err, "path", r.URL.Path)
			writeAppError(w, m.logger, apperrors.NewUnauthorizedError("Invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger tags each request with an ID and logs its outcome
func RequestLogger(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
			next.ServeHTTP(rec, r.WithContext(ctx))

			logger.Info("HTTP request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
