package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/errs"
)

const banner = "Portfolio Backend API - Use /api/health for health check"

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.AppConfig, services Services) Server {
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port) // Bind to 0.0.0.0 for external access

	router := newRouter(services, withAllowedOrigins(cfg.AcceptedOrigin), withMetrics(services.Metrics))

	server := &http.Server{
		Addr:         address,
		Handler:      gzhttp.GzipHandler(router),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, time.Now()}
}

type router struct {
	allowedOrigins []string
	metrics        Metrics
}

func withAllowedOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.allowedOrigins = origins
	}
}

func withMetrics(metrics Metrics) func(*router) {
	return func(r *router) {
		r.metrics = metrics
	}
}

func newRouter(services Services, opts ...func(*router)) *chi.Mux {
	router := router{allowedOrigins: config.AllowedOrigins}
	for _, opt := range opts {
		opt(&router)
	}
	metricsEnabled := router.metrics != nil
	if !metricsEnabled {
		router.metrics = noopMetrics{}
	}

	responder := NewResponder(log.With().Str("handlerName", "router").Logger())

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(requestIDMiddleware)
	chiRouter.Use(HTTPLoggingMiddleware)
	if metricsEnabled {
		chiRouter.Use(metricsMiddleware(router.metrics))
	}
	chiRouter.Use(corsMiddleware(router.allowedOrigins))

	notFound := func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewNotFoundError("Not found", "The requested endpoint does not exist"))
	}
	chiRouter.NotFound(notFound)
	chiRouter.MethodNotAllowed(notFound)

	handlers := initializeHandlers(services)
	limits := newRateLimitMiddleware(services.Limiter, router.metrics)

	chiRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(banner))
	})
	if _, ok := router.metrics.(*MetricsProvider); ok {
		chiRouter.Method(http.MethodGet, "/metrics", router.metrics.Handler())
	}

	chiRouter.Route("/api", func(r chi.Router) {
		setupRoutes(r, handlers, limits)
	})
	setupRoutes(chiRouter, handlers, limits)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
