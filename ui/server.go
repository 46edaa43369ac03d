// Package ui serves the HTTP API for the projection engine.
package ui

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courtlens/app"
	"courtlens/domain/player"
	"courtlens/internal"
)

// Server hosts the prediction API
type Server struct {
	router  chi.Router
	service *app.PredictionService
	runner  *app.BatchRunner
	roster  player.Dataset
	logger  *internal.Logger
}

// NewServer wires the routes around a prediction service and batch runner
func NewServer(service *app.PredictionService, runner *app.BatchRunner) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		runner:  runner,
		logger:  internal.DefaultLogger,
	}
	s.routes()
	return s
}

// WithRoster enables roster-backed lookups (the report endpoint)
func (s *Server) WithRoster(ds player.Dataset) *Server {
	s.roster = ds
	return s
}

func (s *Server) routes() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(60 * time.Second))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/predict", s.handlePredict)
		r.Post("/batch", s.handleBatch)
		r.Get("/reference", s.handleReference)
		r.Get("/report/{player}", s.handleReport)
	})
}

// Handler exposes the router for mounting and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until the context is cancelled
func (s *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on :%s", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
