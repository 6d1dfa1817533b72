// Package server exposes the decision engine and the field resolver over
// HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/Bist0uille/archibot/internal/config"
	"github.com/Bist0uille/archibot/internal/model"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server holds the API dependencies. Handlers share no mutable state beyond
// the rate limiter and the metrics collectors.
type Server struct {
	cfg      config.ServerConfig
	issuer   model.Value
	registry *prometheus.Registry
	metrics  *Metrics
}

// New creates a Server. issuer is the practice profile used when a fields
// request carries none; it may be absent. A nil registry gets a fresh one.
func New(cfg config.ServerConfig, issuer model.Value, registry *prometheus.Registry) *Server {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &Server{
		cfg:      cfg,
		issuer:   issuer,
		registry: registry,
		metrics:  MustNewMetrics(registry),
	}
}

// Handler builds the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	burst := s.cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(s.cfg.RateLimit), burst)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.rateLimit(limiter))
		r.Get("/catalog", s.handleCatalog)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/assist", s.handleAssist)
		r.Post("/documents/{docID}/fields", s.handleFields)
	})
	return r
}
