package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"talent-admin/internal/config"
	"talent-admin/internal/delivery/http/handler"
	"talent-admin/internal/delivery/http/middleware"
	"talent-admin/internal/delivery/http/routes"
	v1 "talent-admin/internal/delivery/http/routes/v1"
	"talent-admin/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over an initialised container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the event hub and returns the app
// with a cleanup that stops the hub, drains pending hiring-rate work and
// closes connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	checks := []handler.HealthCheck{{Name: "store", Check: c.StorePing}}
	if strings.TrimSpace(c.Config.Redis.Host) != "" {
		checks = append(checks, handler.HealthCheck{Name: "cache", Check: c.Cache.Ping})
	}
	health := handler.NewHealthHandler(checks...)

	routes.NewRegistry(health, ws.NewHandler(c.Hub, c.Logger), v1.Handlers{
		Auth:        handler.NewAuthHandler(c.Auth),
		Dashboard:   handler.NewDashboardHandler(c.Dashboard),
		Company:     handler.NewCompanyHandler(c.CompanyUC),
		Job:         handler.NewJobHandler(c.JobUC),
		Application: handler.NewApplicationHandler(c.ApplicationUC),
		Freelancer:  handler.NewFreelancerHandler(c.FreelancerUC),
		Protect:     middleware.NewAuthMiddleware(c.Auth).Middleware(),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
