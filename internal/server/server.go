// Package server provides the HTTP API for inspekt.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hyperjump/inspekt/internal/config"
	"github.com/hyperjump/inspekt/internal/export"
	"github.com/hyperjump/inspekt/internal/models"
	"github.com/hyperjump/inspekt/internal/upload"
	"go.uber.org/zap"
)

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(doc *models.UploadedDocument) (string, error)
}

// ReportAnalyzer produces structured findings for report text.
type ReportAnalyzer interface {
	Analyze(ctx context.Context, text string) (any, error)
}

// ReportExporter renders report data as a downloadable file.
type ReportExporter interface {
	Export(typ models.ExportType, data json.RawMessage) (*export.File, error)
}

// Server is the HTTP server for the inspekt API.
type Server struct {
	analyzer  ReportAnalyzer
	extractor TextExtractor
	uploads   *upload.Store
	exporter  ReportExporter
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	analyzer ReportAnalyzer,
	extractor TextExtractor,
	uploads *upload.Store,
	exporter ReportExporter,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		analyzer:  analyzer,
		extractor: extractor,
		uploads:   uploads,
		exporter:  exporter,
		config:    cfg,
		logger:    logger,
	}
}

// Routes returns the router with all middleware attached.
// No timeout middleware is installed: analysis waits on the completion service for as
// long as llm.timeout allows.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	r.Use(middleware.Compress(5))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	r.Post("/api/analyze", s.handleAnalyze)
	r.Post("/api/export", s.handleExport)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
