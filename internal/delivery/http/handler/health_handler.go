package handler

import (
	"context"
	"sync"
	"time"

	"portfolio/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"
)

// HealthCheck probes one optional dependency. A failing check degrades the report, never the status code.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	var mu sync.Mutex
	deps := make(map[string]string, len(h.checks))
	g, gctx := errgroup.WithContext(ctx)
	for name, check := range h.checks {
		g.Go(func() error {
			state := "ok"
			if err := check(gctx); err != nil {
				state = "unavailable"
			}
			mu.Lock()
			deps[name] = state
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status := "ok"
	for _, state := range deps {
		if state != "ok" {
			status = "degraded"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"status":       status,
		"dependencies": deps,
	})
}
