package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-admin/internal/app"
	"talent-admin/internal/config"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[Server] .env not loaded: %v", err)
	}

	if err := run(); err != nil {
		log.Printf("[Server] exited: %v", err)
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM or a listener failure, then drains the
// HTTP server before the container cleanup waits on hiring-rate work.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	server, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("[Server] cleanup: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening addr=%s env=%s backend=%s", addr, cfg.App.Environment, cfg.Backend)
		errCh <- server.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[Server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Fiber.ShutdownWithContext(shutdownCtx)
}
