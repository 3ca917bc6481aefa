// Package httpserver provides the HTTP REST API server for the research ideas service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/ideas"
	"github.com/helixir/research-ideas-service/internal/papersources"
)

// IdeaGenerator runs one idea generation pipeline.
// *ideas.Pipeline satisfies this interface.
type IdeaGenerator interface {
	Generate(ctx context.Context, req ideas.Request) (domain.PipelineResult, error)
}

// TrendAnalyzer summarizes recent literature for a topic.
// *trends.Analyzer satisfies this interface.
type TrendAnalyzer interface {
	Analyze(ctx context.Context, topic string) (string, domain.TrendAnalysis, error)
}

// RequestRecorder receives per-request telemetry.
// *observability.Metrics satisfies this interface.
type RequestRecorder interface {
	RecordHTTPRequest(route, method, status string, durationSeconds float64)
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MaxBodyBytes bounds request bodies. Zero means defaultMaxBodyBytes.
	MaxBodyBytes int64
	// DefaultPapers is used when a generation request omits num_papers.
	DefaultPapers int
	// MaxPapers caps num_papers before the pipeline applies its own bound.
	MaxPapers int
}

// Dependencies are the collaborators served by the HTTP API.
type Dependencies struct {
	Generator IdeaGenerator
	Source    papersources.PaperSource
	Trends    TrendAnalyzer
	Recorder  RequestRecorder
}

// Server is the HTTP REST API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	generator  IdeaGenerator
	source     papersources.PaperSource
	trends     TrendAnalyzer
	recorder   RequestRecorder
	validate   *validator.Validate
	logger     zerolog.Logger
	cfg        Config
	draining   atomic.Bool
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(cfg Config, deps Dependencies, logger zerolog.Logger) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.MaxPapers <= 0 {
		cfg.MaxPapers = ideas.MaxPapers
	}
	if cfg.DefaultPapers <= 0 || cfg.DefaultPapers > cfg.MaxPapers {
		cfg.DefaultPapers = cfg.MaxPapers
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	s := &Server{
		generator: deps.Generator,
		source:    deps.Source,
		trends:    deps.Trends,
		recorder:  deps.Recorder,
		validate:  validate,
		logger:    logger.With().Str("component", "http-server").Logger(),
		cfg:       cfg,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(correlationIDMiddleware)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(jsonContentTypeMiddleware)

	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Post("/api/generate-ideas-enhanced", s.generateIdeas)
	r.Post("/api/v1/ideas", s.generateIdeas)
	r.Post("/api/search-papers", s.searchPapers)
	r.Post("/analyze-trends", s.analyzeTrends)
	r.Post("/api/analyze-trends", s.analyzeTrends)

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server. Readiness reports
// not_ready from the moment shutdown begins.
func (s *Server) Shutdown(ctx context.Context) error {
	s.draining.Store(true)
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readinessHandler reports whether the server accepts new work.
func (s *Server) readinessHandler(w http.ResponseWriter, _ *http.Request) {
	if s.draining.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeMessage writes a client error in the {success:false, message} shape.
func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, failureResponse{Success: false, Message: message})
}

// writeError writes a server error in the {success:false, error} shape.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, failureResponse{Success: false, Error: message})
}
