package routes

import (
	"talent-admin/internal/delivery/http/handler"
	v1 "talent-admin/internal/delivery/http/routes/v1"
	"talent-admin/internal/ws"

	"github.com/gofiber/fiber/v3"
)

const apiV1Prefix = "/api/v1"

// Registry mounts the public surface: /health and /ws at the root and the
// admin API under /api/v1.
type Registry struct {
	health *handler.HealthHandler
	events *ws.Handler
	api    v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, events *ws.Handler, api v1.Handlers) *Registry {
	if health == nil {
		health = handler.NewHealthHandler()
	}
	return &Registry{health: health, events: events, api: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	if r.events != nil {
		r.events.RegisterRoutes(app)
	}
	v1.Register(app.Group(apiV1Prefix), r.api)
}
