package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/0Rorschach1/midterm-exam/internal/service"
)

// Server represents the HTTP server
type Server struct {
	handler *Handler
	metrics *Metrics
	server  *http.Server
	port    string
	logger  *zap.Logger
}

// NewServer creates a new HTTP server. Metrics are always collected;
// per-request logging is enabled with verbose.
func NewServer(svc service.URLShortener, port, serverURL string, verbose bool, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := NewHandler(svc, serverURL, logger)
	metrics := NewMetrics()

	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/urls", handler.URLsHandler)
	mux.HandleFunc("/api/urls/", handler.URLsDetailHandler)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Redirect endpoint (catch-all)
	mux.HandleFunc("/", handler.Redirect)

	var finalHandler http.Handler = metrics.Middleware(mux)
	if verbose {
		finalHandler = NewLoggingMiddleware(logger).Middleware(finalHandler)
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		handler: handler,
		metrics: metrics,
		server:  server,
		port:    port,
		logger:  logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("port", s.port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

// Port returns the server port
func (s *Server) Port() string {
	return s.port
}

// Handler returns the server handler (useful for testing)
func (s *Server) Handler() *Handler {
	return s.handler
}
