// Package http serves the LocalMind API and browser page over HTTP, and
// fetches remote pages for URL import.
package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/localmind"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before shutdown.
const ShutdownTimeout = 5 * time.Second

// RequestObserver records completed requests, e.g. as metrics.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// Server is the LocalMind HTTP server.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Bind address to open.
	Addr string

	Logger *slog.Logger

	// Web holds static/index.html and the static/ assets. Optional.
	Web fs.FS

	// Observer is notified after every request. Optional.
	Observer RequestObserver

	// MetricsHandler serves GET /metrics. Optional.
	MetricsHandler http.Handler

	Policy localmind.UploadPolicy

	DocumentService localmind.DocumentService
	SearchService   localmind.SearchService
	StatsService    localmind.StatsService
	Uploader        localmind.Uploader

	// Importer and Asker are optional; their routes return 501 when unset.
	Importer localmind.Importer
	Asker    localmind.Asker
}

// NewServer returns a new instance of Server with all routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      120 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		router: chi.NewRouter(),
		Logger: slog.Default(),
		Policy: localmind.DefaultUploadPolicy(),
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)
	s.router.Use(cors)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/static/*", s.handleStatic)
	s.router.Get("/metrics", s.handleMetrics)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/search", s.handleSearch)
		r.Post("/upload", s.handleUpload)
		r.Post("/bulk_upload", s.handleBulkUpload)
		r.Post("/import", s.handleImport)
		r.Get("/documents", s.handleDocumentList)
		r.Get("/documents/{id}", s.handleDocumentView)
		r.Delete("/documents/{id}", s.handleDocumentDelete)
		r.Get("/stats", s.handleStats)
		r.Post("/ask", s.handleAsk)
	})

	s.server.Handler = s.router
	return s
}

// Handler returns the root handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// URL returns the address the server is listening on.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Open begins listening on Addr and serves in a background goroutine.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sr, r)

		duration := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		level := slog.LevelInfo
		if route == "/api/health" || route == "/metrics" || route == "/static/*" {
			level = slog.LevelDebug
		}
		s.Logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", strconv.Itoa(sr.statusCode),
			"duration_ms", duration.Milliseconds(),
		)

		if s.Observer != nil {
			s.Observer.ObserveRequest(r.Method, route, sr.statusCode, duration)
		}
	})
}
