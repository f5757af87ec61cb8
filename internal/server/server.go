package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nahidhasan98/changelog-viewer/internal/config"
	"github.com/nahidhasan98/changelog-viewer/internal/handlers"
	"github.com/nahidhasan98/changelog-viewer/internal/logger"
	"github.com/nahidhasan98/changelog-viewer/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	middleware *middleware.Middleware
	log        *logger.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, handler *handlers.Handler, log *logger.Logger) *Server {
	mw := middleware.New(log, cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.Server.AllowedOrigins)

	return &Server{
		handler:    handler,
		middleware: mw,
		log:        log,
	}
}

// Handler builds the routed handler with the middleware chain applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Register routes
	mux.HandleFunc("GET /health", s.handler.HealthCheck)
	mux.HandleFunc("POST /sessions", s.handler.CreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handler.GetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handler.DeleteSession)
	mux.HandleFunc("POST /sessions/{id}/next", s.handler.NextPage)
	mux.HandleFunc("PUT /sessions/{id}/repo", s.handler.UpdateRepo)
	mux.HandleFunc("PUT /sessions/{id}/pattern", s.handler.UpdatePattern)
	mux.HandleFunc("PUT /sessions/{id}/fragment", s.handler.UpdateFragment)
	mux.HandleFunc("GET /sessions/{id}/share", s.handler.Share)

	// Apply middleware chain
	handler := s.middleware.Recovery(mux)
	handler = s.middleware.Logging(handler)
	handler = s.middleware.Security(handler)
	handler = s.middleware.CORS(handler)
	handler = s.middleware.RateLimit(handler)

	return handler
}

// Start starts the HTTP server
func (s *Server) Start(cfg *config.Config) error {
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	s.log.Infof("HTTP server listening on %s", cfg.Server.Address())

	// Start server in a goroutine
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("HTTP server error", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server shutdown complete")
	return nil
}
