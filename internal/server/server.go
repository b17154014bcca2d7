// Package server is the development server: it serves a built docs site
// with the zoom runtime injected into every page, the runtime itself, and a
// small JSON API over the fit calculator.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port     int
	SiteDir  string // built site to serve
	AllowAll bool   // allow all CORS origins (dev mode)

	// WasmPath and WasmExecPath locate the runtime on disk.
	WasmPath     string
	WasmExecPath string
	// RuntimeScript is served as the runtime config script.
	RuntimeScript []byte
	Runtime       site.Runtime
	Fit           fit.Params
}

// Server serves one site.
type Server struct {
	cfg        Config
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. A nil logger uses the default logger.
func New(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Fit == (fit.Params{}) {
		cfg.Fit = fit.DefaultParams()
	}
	s := &Server{cfg: cfg, logger: logger.WithPrefix("server")}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/fit", s.handleFit)

	rt := s.cfg.Runtime
	if rt.ConfigPath != "" {
		r.Get("/"+rt.ConfigPath, s.handleConfig)
	}
	if rt.Wasm != "" {
		r.Get("/"+rt.Wasm, s.serveFile(s.cfg.WasmPath, "application/wasm"))
	}
	if rt.WasmExec != "" {
		r.Get("/"+rt.WasmExec, s.serveFile(s.cfg.WasmExecPath, "text/javascript; charset=utf-8"))
	}

	r.Handle("/*", s.siteHandler())
	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("listening", "addr", addr, "site", s.cfg.SiteDir)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}
