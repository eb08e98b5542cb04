package handler

import (
	"context"

	"talent-admin/internal/delivery/http/dto"
	"talent-admin/internal/delivery/http/middleware"
	"talent-admin/internal/domain/application"
	"talent-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationService interface {
	ListApplications(ctx context.Context) ([]application.Detail, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (application.Detail, error)
}

type ApplicationHandler struct {
	svc ApplicationService
}

func NewApplicationHandler(svc ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Patch("/:id/status", h.UpdateStatus)
}

func (h *ApplicationHandler) List(c fiber.Ctx) error {
	items, err := h.svc.ListApplications(c.Context())
	if err != nil {
		return mapUsecaseError(err, "Application not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

// UpdateStatus changes an application status. Hiring-rate upkeep runs
// behind the usecase and never changes this response.
func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if !application.Status(req.Status).Valid() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, nil)
	}

	d, err := h.svc.UpdateApplicationStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapUsecaseError(err, "Application not found")
	}
	return response.Success(c, fiber.StatusOK, "Application status updated", dto.NewApplicationResponse(d))
}
