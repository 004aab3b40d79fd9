// Package server runs the task persistence endpoint.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/tasklist/config"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/server/handler"
	"github.com/ncobase/tasklist/server/middleware"
)

// Server represents the persistence endpoint.
type Server struct {
	config  *config.Server
	logger  *logger.Logger
	handler *handler.Handler
	engine  *gin.Engine
}

// New creates the server and builds its router. runMode is a gin mode
// (debug, release, test); anything else means release.
func New(cfg *config.Server, runMode string, l *logger.Logger, h *handler.Handler) *Server {
	switch runMode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(runMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{config: cfg, logger: l, handler: h}
	s.engine = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Trace(),
		middleware.Tracing(),
		middleware.Logger(s.logger),
		middleware.Recovery(s.logger),
	)

	basePath := s.config.BasePath
	if basePath == "" {
		basePath = "/"
	}
	s.handler.RegisterRoutes(r.Group(basePath))
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "Shutting down server...")
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error(context.Background(), "Server forced to shutdown", "error", err)
		return err
	}
	s.logger.Info(context.Background(), "Server exited")
	return <-errCh
}
