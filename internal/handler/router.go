package handler

import (
	"net/http"

	"pdf-validator/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	validationHandler *ValidationHandler,
	authMiddleware func(http.Handler) http.Handler,
	allowedOrigins []string,
	middlewares ...mux.MiddlewareFunc,
) http.Handler {
	router := mux.NewRouter()
	for _, mw := range middlewares {
		router.Use(mw)
	}

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-validator"}`))
	}).Methods("GET")

	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/validate", validationHandler.ValidateUpload).Methods("POST")

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/storage/validate", validationHandler.ValidateStored).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
