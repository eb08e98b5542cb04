package v1

import (
	"talent-admin/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Handlers are the /api/v1 endpoints. Protect guards every group except the
// public auth routes.
type Handlers struct {
	Auth        *handler.AuthHandler
	Dashboard   *handler.DashboardHandler
	Company     *handler.CompanyHandler
	Job         *handler.JobHandler
	Application *handler.ApplicationHandler
	Freelancer  *handler.FreelancerHandler
	Protect     fiber.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	protect := h.Protect
	if protect == nil {
		protect = func(c fiber.Ctx) error { return c.Next() }
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"), protect)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(r.Group("/dashboard", protect))
	}
	if h.Company != nil {
		h.Company.RegisterRoutes(r.Group("/companies", protect))
	}
	if h.Job != nil {
		h.Job.RegisterRoutes(r.Group("/jobs", protect))
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(r.Group("/applications", protect))
	}
	if h.Freelancer != nil {
		h.Freelancer.RegisterRoutes(r.Group("/freelancers", protect))
	}
}
