package handler

import (
	"context"

	"talent-admin/internal/delivery/http/dto"
	"talent-admin/internal/delivery/http/middleware"
	"talent-admin/internal/domain/job"
	"talent-admin/internal/pkg/response"
	"talent-admin/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobService interface {
	ListJobs(ctx context.Context, status string) (usecase.JobList, error)
	GetJob(ctx context.Context, id uuid.UUID) (usecase.JobWithApplications, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) (job.Job, error)
}

type JobHandler struct {
	svc JobService
}

func NewJobHandler(svc JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Patch("/:id/status", h.UpdateStatus)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	out, err := h.svc.ListJobs(c.Context(), c.Query("status"))
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(out))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	out, err := h.svc.GetJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobDetailResponse(out))
}

func (h *JobHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if !job.Status(req.Status).Valid() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, nil)
	}

	j, err := h.svc.UpdateJobStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.Success(c, fiber.StatusOK, "Job status updated", dto.NewJobResponse(j))
}
