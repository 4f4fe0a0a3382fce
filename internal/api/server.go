// Package api serves the mind map over HTTP for the web frontend.
//
// # Routes
//
//	GET /health                  liveness probe
//	GET /api/mindmap             graph JSON; ETag is the graph revision
//	GET /api/mindmap.svg         radial SVG with navigation links
//	GET /api/mindmap.dot         Graphviz DOT with pinned positions
//	GET /api/navigate/{nodeID}   navigation intent for a node
//
// The mind-map routes accept query overrides: cap (models per section),
// section (only that section's models), search, root (center label) and
// refresh=true (bypass caches).
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

// Config holds server configuration.
type Config struct {
	Addr        string
	CORSOrigins []string // "*" allows every origin
	Timeout     time.Duration
}

// Server serves the mind-map API.
type Server struct {
	cfg        Config
	runner     *pipeline.Runner
	base       pipeline.Options
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. base holds the pipeline options every request
// starts from; it is validated here.
func New(cfg Config, runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = runner.Logger
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if err := base.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		base:   base,
		logger: logger,
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/mindmap", s.handleMindmap)
		r.Get("/mindmap.svg", s.handleSVG)
		r.Get("/mindmap.dot", s.handleDOT)
		r.Get("/navigate/{nodeID}", s.handleNavigate)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// requestLogger logs one line per request at info level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
