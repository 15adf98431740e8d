// Package api exposes the REST surface of filestash: the auth endpoints and
// the token-guarded file operations.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkrasnovs/filestash/internal/logging"
	"github.com/dkrasnovs/filestash/internal/server/auth"
	"github.com/dkrasnovs/filestash/internal/server/services"
)

// Server wires HTTP routes to the user and file services.
type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	files   *services.FileService
	tokens  *auth.TokenIssuer
	metrics *metrics
}

func NewServer(address string, logger logging.Logger, us *services.UserService, fs *services.FileService, tokens *auth.TokenIssuer) *Server {
	return &Server{
		address: address,
		logger:  logger.With("module", "http_server"),
		users:   us,
		files:   fs,
		tokens:  tokens,
		metrics: newMetrics(),
	}
}

// Handler builds the route table. Split out from Run so tests can drive the
// full stack through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.Handle("POST /files/upload", s.withAuth(s.handleUpload))
	mux.Handle("GET /files", s.withAuth(s.handleList))
	mux.Handle("GET /files/{id}/download", s.withAuth(s.handleDownload))
	mux.Handle("DELETE /files/{id}", s.withAuth(s.handleDelete))

	mux.Handle("GET /metrics", s.metrics.handler())

	return s.metrics.instrument(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
