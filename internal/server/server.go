// Package server exposes the dashboard's JSON API. Each request recomputes
// its view from the immutable base table; no filter state lives server-side.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/inmodata/pisos-dashboard/internal/dataset"
	"github.com/inmodata/pisos-dashboard/pkg/frankfurter"
)

// Server wires the loader, thresholds, and the currency client into handlers.
type Server struct {
	loader      *dataset.Loader
	minRent     float64
	zThreshold  float64
	fx          *frankfurter.Client
	corsOrigins []string
}

// Options configures the server.
type Options struct {
	Loader          *dataset.Loader
	MinRent         float64
	ZScoreThreshold float64
	Frankfurter     *frankfurter.Client
	CORSOrigins     []string
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.ZScoreThreshold == 0 {
		opts.ZScoreThreshold = 3
	}
	return &Server{
		loader:      opts.Loader,
		minRent:     opts.MinRent,
		zThreshold:  opts.ZScoreThreshold,
		fx:          opts.Frankfurter,
		corsOrigins: opts.CORSOrigins,
	}
}

// Router builds the chi router with all dashboard routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
		}))
	}

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/provinces", s.handleProvinces)
		r.Get("/views/users", s.handleUsersView)
		r.Get("/views/clients", s.handleClientsView)
		r.Get("/compare", s.handleCompare)
		r.Get("/currency", s.handleCurrency)
	})
	r.Post("/admin/reload", s.handleReload)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReload drops the dataset cache so the next request re-reads the file.
func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	s.loader.Invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger logs one line per request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
