// Package server exposes the chart builder and the bridge message intake
// over HTTP. It is the remote side of the update boundary: proxies post
// messages here and the server applies them to the instance registry.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chartbridge/pkg/bridge/store"
	"github.com/matzehuels/chartbridge/pkg/cache"
)

// Config carries the server's collaborators. Zero-value fields fall back to
// in-memory defaults, so an empty Config yields a fully working server.
type Config struct {
	// Store is the instance registry backend. Defaults to in-memory.
	Store store.Store

	// Cache holds built configurations keyed by request digest.
	// Defaults to in-memory.
	Cache cache.Cache

	// CacheTTL bounds how long built configurations stay cached.
	// Zero means entries never expire.
	CacheTTL time.Duration

	// Logger receives request and error logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server handles chart build requests and bridge message intake.
type Server struct {
	store    store.Store
	cache    cache.Cache
	keyer    cache.Keyer
	cacheTTL time.Duration
	logger   *log.Logger
}

// New creates a server from cfg, filling in in-memory defaults.
func New(cfg Config) *Server {
	s := &Server{
		store:    cfg.Store,
		cache:    cfg.Cache,
		keyer:    cache.NewDefaultKeyer(),
		cacheTTL: cfg.CacheTTL,
		logger:   cfg.Logger,
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.cache == nil {
		s.cache = cache.NewMemoryCache()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/charts", s.handleBuildChart)
		r.Route("/instances/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetInstance)
			r.Delete("/", s.handleDeleteInstance)
			r.Post("/messages", s.handleInstanceMessage)
		})
	})
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
