package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/pkg/response"
)

// Pinger is the slice of the database pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache *cache.Redis
}

func NewHealthHandler(db Pinger, c *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/healthz", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
	}
	if err := h.cache.Ping(ctx); err != nil {
		// Cache is a soft dependency; report but stay healthy.
		checks["cache"] = err.Error()
	}

	if !healthy {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", checks)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, checks)
}
