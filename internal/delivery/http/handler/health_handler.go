package handler

import (
	"context"
	"time"

	"talent-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck checks one dependency. A nil Check is skipped.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	components := make(map[string]string, len(h.checks))
	status := fiber.StatusOK
	for _, chk := range h.checks {
		if chk.Check == nil {
			continue
		}
		if err := chk.Check(ctx); err != nil {
			components[chk.Name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		components[chk.Name] = "up"
	}

	data := map[string]any{
		"status":     "ok",
		"components": components,
		"time":       time.Now().UTC().Format(time.RFC3339),
	}
	if status != fiber.StatusOK {
		data["status"] = "degraded"
		return response.Error(c, status, "service degraded", data)
	}
	return response.Success(c, status, response.MessageOK, data)
}
