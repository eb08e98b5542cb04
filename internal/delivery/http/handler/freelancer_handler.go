package handler

import (
	"context"

	"talent-admin/internal/delivery/http/dto"
	"talent-admin/internal/domain/freelancer"
	"talent-admin/internal/pkg/response"
	"talent-admin/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type FreelancerService interface {
	ListFreelancers(ctx context.Context, q usecase.FreelancerQuery) (usecase.FreelancerList, error)
	GetFreelancer(ctx context.Context, id uuid.UUID) (freelancer.Freelancer, error)
}

type FreelancerHandler struct {
	svc FreelancerService
}

func NewFreelancerHandler(svc FreelancerService) *FreelancerHandler {
	return &FreelancerHandler{svc: svc}
}

func (h *FreelancerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *FreelancerHandler) List(c fiber.Ctx) error {
	out, err := h.svc.ListFreelancers(c.Context(), usecase.FreelancerQuery{
		Query:      c.Query("q"),
		Completion: c.Query("completion"),
		Location:   c.Query("location"),
	})
	if err != nil {
		return mapUsecaseError(err, "Freelancer not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFreelancerListResponse(out))
}

func (h *FreelancerHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	f, err := h.svc.GetFreelancer(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Freelancer not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFreelancerResponse(f))
}
