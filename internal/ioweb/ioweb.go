// Package ioweb serves dashboard passes over HTTP for a browser front end.
//
// Every request belongs to a session identified by the X-Session-ID header
// or the aire_session cookie. Sessions hold their own data source; the
// reference dataset is shared read-only between them.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"github.com/aire-program/aire-impact-dashboard/pkg/source"
	"github.com/gin-gonic/gin"
)

// Server is the HTTP surface of the dashboard.
type Server struct {
	cfg      config.ServerConfig
	registry *Registry
	engine   *gin.Engine
}

// New creates a server backed by the reference cache.
func New(cfg config.ServerConfig, ref *source.ReferenceCache) *Server {
	res := &Server{
		cfg:      cfg,
		registry: NewRegistry(ref, time.Duration(cfg.SessionTTLMinutes)*time.Minute),
	}
	res.engine = res.router()
	return res
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Registry returns the session registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run listens on the configured port until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.expireSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return StartError(addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	slog.Info("Stopping HTTP server")
	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// expireSessions sweeps idle sessions until ctx is done, so memory is
// released even when no requests arrive.
func (s *Server) expireSessions(ctx context.Context) {
	ticker := time.NewTicker(s.registry.TTL() / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.registry.Sweep(now)
		}
	}
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = int64(s.cfg.MaxUploadMB) << 20

	r.GET("/healthcheck", s.healthCheck)

	api := r.Group("/api")
	api.Use(s.attachSession())
	{
		api.GET("/source", s.getSource)
		api.PUT("/source", s.putSource)

		api.POST("/upload", s.upload)
		api.DELETE("/upload", s.discard)

		api.GET("/dashboard", s.dashboard)
		api.GET("/tables/:name", s.tableCSV)
		api.GET("/focus/:department", s.focus)
	}
	return r
}
