package handler

import (
	"context"

	"talent-admin/internal/domain/dashboard"
	"talent-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type DashboardService interface {
	GetStats(ctx context.Context) (dashboard.Stats, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/stats", h.Stats)
}

func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.GetStats(c.Context())
	if err != nil {
		return mapUsecaseError(err, "Stats not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}
