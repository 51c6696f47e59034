package api

import (
	"log/slog"
	"net/http"

	"github.com/acarvalho/docaudit/internal/config"
	"github.com/acarvalho/docaudit/internal/review"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docaudit.
type Server struct {
	router       chi.Router
	orchestrator *review.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *review.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocauditAPIKey, s.log))

		r.Post("/api/reviews", s.handleSubmitReview)
		r.Get("/api/reviews/{runID}", s.handleReviewStatus)
		r.Get("/api/reviews/{runID}/findings", s.handleFindings)
		r.Get("/api/reviews/{runID}/report", s.handleAuditReport)
		r.Get("/api/reviews/{runID}/document", s.handleCorrectedDocument)

		r.Get("/api/models", s.handleListModels)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
