package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/healthpremium/backend/internal/domain"
	"github.com/healthpremium/backend/internal/service"
)

// HealthChecker reports whether a collaborator is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler contains all HTTP handlers
type Handler struct {
	premiumSvc   *service.PremiumService
	modelsHealth HealthChecker
}

// NewHandler creates a new handler. modelsHealth may be nil when models run in-process.
func NewHandler(premiumSvc *service.PremiumService, modelsHealth HealthChecker) *Handler {
	return &Handler{
		premiumSvc:   premiumSvc,
		modelsHealth: modelsHealth,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{"database": "ok", "models": "ok"}
	if err := h.premiumSvc.Health(ctx); err != nil {
		checks["database"] = err.Error()
		status = fiber.StatusServiceUnavailable
	}
	if h.modelsHealth != nil {
		if err := h.modelsHealth.Health(ctx); err != nil {
			checks["models"] = err.Error()
			status = fiber.StatusServiceUnavailable
		}
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  overall,
		"service": "premium-backend",
		"version": "1.0.0",
		"checks":  checks,
	})
}

// Predict returns the premium predicted for an applicant record
func (h *Handler) Predict(c *fiber.Ctx) error {
	input, err := parseInput(c)
	if err != nil {
		return err
	}

	prediction, err := h.premiumSvc.Predict(c.Context(), input)
	if err != nil {
		return predictionError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    prediction,
	})
}

// Features returns the preprocessed feature vector for an applicant record
func (h *Handler) Features(c *fiber.Ctx) error {
	input, err := parseInput(c)
	if err != nil {
		return err
	}

	features, err := h.premiumSvc.Features(input)
	if err != nil {
		return predictionError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    features,
	})
}

// ListPredictions returns recent prediction audit entries
func (h *Handler) ListPredictions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	data, err := h.premiumSvc.History(c.Context(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch prediction history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// GetOptions returns the categorical choices for the applicant form
func (h *Handler) GetOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    domain.DefaultFormOptions(),
	})
}

func parseInput(c *fiber.Ctx) (domain.InputRecord, error) {
	var input domain.InputRecord
	if err := c.BodyParser(&input); err != nil || input == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return input, nil
}

// predictionError maps pipeline failures to HTTP errors
func predictionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidField):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to get prediction")
	}
}
