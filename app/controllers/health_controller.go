package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/cuisineai/pkg/ctx"
)

// Pinger checks a backing dependency.
type Pinger func(ctx context.Context) error

type HealthController struct {
	ping    Pinger
	timeout time.Duration
}

func NewHealthController(ping Pinger) *HealthController {
	return &HealthController{ping: ping, timeout: 2 * time.Second}
}

// Check answers 200 when the store responds and 503 otherwise.
func (h *HealthController) Check(c *ctx.Context) {
	pctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if err := h.ping(pctx); err != nil {
		c.Logger().Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
