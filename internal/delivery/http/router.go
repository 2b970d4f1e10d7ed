package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healthpremium/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, premiumSvc *service.PremiumService, modelsHealth HealthChecker, gatherer prometheus.Gatherer) {
	handler := NewHandler(premiumSvc, modelsHealth)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Prometheus scrape endpoint
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Post("/predict", handler.Predict)
		api.Post("/features", handler.Features)
		api.Get("/predictions", handler.ListPredictions)
		api.Get("/options", handler.GetOptions)
	}
}

// ErrorHandler renders errors as the API's JSON error envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
