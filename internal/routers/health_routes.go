package routers

import (
	"github.com/go-chi/chi/v5"

	"prepmate/interview/internal/handlers"
	"prepmate/interview/internal/metrics"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.HealthHandler)
	router.Get("/readyz", healthHandler.ReadyHandler)
	router.Method("GET", "/metrics", metrics.Handler())
}
