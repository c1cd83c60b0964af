package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battlebots/internal/api/apierr"
	"github.com/mcoot/battlebots/internal/api/handler"
	"github.com/mcoot/battlebots/internal/api/middleware"
	"github.com/mcoot/battlebots/internal/services/submission"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SubmissionService *submission.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	submissionHandler := handler.NewSubmissionHandler(cfg.SubmissionService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/submissions", submissionHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/results/{user_id}", submissionHandler.GetResult).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", submissionHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/health", submissionHandler.Health).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})

	return r
}
