package handler

import (
	"context"

	"talent-admin/internal/delivery/http/dto"
	"talent-admin/internal/domain/company"
	"talent-admin/internal/pkg/response"
	"talent-admin/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyService interface {
	ListCompanies(ctx context.Context, tab string) (usecase.CompanyList, error)
	ListUnverifiedCompanies(ctx context.Context) ([]company.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (company.Company, error)
	VerifyCompany(ctx context.Context, id uuid.UUID) (company.Company, error)
	RejectCompany(ctx context.Context, id uuid.UUID) (company.Company, error)
}

type CompanyHandler struct {
	svc CompanyService
}

func NewCompanyHandler(svc CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/unverified", h.ListUnverified)
	r.Get("/:id", h.Get)
	r.Post("/:id/verify", h.Verify)
	r.Post("/:id/reject", h.Reject)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	out, err := h.svc.ListCompanies(c.Context(), c.Query("tab"))
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CompanyListResponse{
		Items: dto.NewCompanyResponses(out.Items),
		Counts: dto.CompanyTabCountsResponse{
			All:        out.Counts.All,
			Requesting: out.Counts.Requesting,
			Others:     out.Counts.Others,
		},
	})
}

func (h *CompanyHandler) ListUnverified(c fiber.Ctx) error {
	items, err := h.svc.ListUnverifiedCompanies(c.Context())
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponses(items))
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	co, err := h.svc.GetCompany(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Verify(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	co, err := h.svc.VerifyCompany(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusOK, "Company verified", dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Reject(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	co, err := h.svc.RejectCompany(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusOK, "Company rejected", dto.NewCompanyResponse(co))
}
