package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/sumitcodes/portfolio-backend/config"
)

// setupRoutes registers every public route on r. The router mounts the same
// set both at the root and under /api.
func setupRoutes(r chi.Router, handlers *routeHandlers, limits rateLimitMiddleware) {
	r.Get("/health", handlers.healthHandler.getHealth())

	r.Route("/experiences", func(r chi.Router) {
		r.Use(limits.limit(config.RouteExperiences))
		r.Get("/", handlers.experienceHandler.getAllExperiences())
		r.Get("/{id}", handlers.experienceHandler.getExperience())
	})

	r.Route("/apps", func(r chi.Router) {
		r.Use(limits.limit(config.RouteAppStore))
		r.Get("/app-store/{id}", handlers.appHandler.getAppStoreApp())
		r.Get("/play-store/{id}", handlers.appHandler.getPlayStoreApp())
	})

	r.Route("/closed-tests", func(r chi.Router) {
		r.Use(limits.limit(config.RouteClosedTests))
		r.Get("/", handlers.closedTestHandler.getAllClosedTests())
		r.Get("/check/{packageName}", handlers.closedTestHandler.checkTestingStatus())
		r.Get("/{id}", handlers.closedTestHandler.getClosedTest())
	})

	r.With(limits.limit(config.RouteContact)).Post("/contact", handlers.contactHandler.sendContact())
	r.With(limits.limit(config.RouteStats)).Get("/stats", handlers.statsHandler.getStats())
	r.With(limits.limit(config.RouteDefault)).Get("/utils/format-date/{date}", handlers.utilsHandler.formatDate())
}
