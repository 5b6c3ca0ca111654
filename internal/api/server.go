package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limbo/coco/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	mx         *chi.Mux
	engines    service.EngineProviderI
	jwtService JWTServiceI
	health     func(ctx context.Context) error
}

type ServicesList struct {
	Engines    service.EngineProviderI
	JwtService JWTServiceI
	// Reports readiness of the remote store, optional
	Health func(ctx context.Context) error
}

func New(servicesOptions *ServicesList) *Server {
	if servicesOptions.Engines == nil {
		panic("provided nil engine provider")
	}
	if servicesOptions.JwtService == nil {
		panic("provided nil jwt service")
	}
	s := &Server{
		mx:         chi.NewMux(),
		engines:    servicesOptions.Engines,
		jwtService: servicesOptions.JwtService,
		health:     servicesOptions.Health,
	}
	s.MountRoutes()
	return s
}

func (s *Server) MountRoutes() {
	s.mx.Use(middleware.Recoverer)
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Use(s.MetricsMiddleware)

	s.mx.Get("/healthz", s.Health)
	s.mx.Handle("/metrics", promhttp.Handler())

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.Use(s.LoggerExtensionMiddleware)

		r.Get("/practices", s.ListPractices)
		r.Post("/practices", s.CreatePractice)
		r.Get("/practices/daily", s.ListDaily)
		r.Delete("/practices/{id}", s.DeletePractice)
		r.Put("/practices/{id}/daily", s.AddToDaily)
		r.Delete("/practices/{id}/daily", s.RemoveFromDaily)
		r.Post("/practices/{id}/complete", s.CompletePractice)
		r.Get("/completions/today", s.TodayCompletions)
		r.Get("/progress", s.Progress)
		r.Post("/sync", s.Sync)
		r.Get("/snapshot", s.Snapshot)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server started", slog.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("api server stopped")
	return nil
}
