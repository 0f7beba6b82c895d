package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/config"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	cfg *config.Config
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(cfg *config.Config) *ProbeHandler {
	return &ProbeHandler{cfg: cfg}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 503 until the upstream catalog credentials are configured; a shell
// that can't forward anything shouldn't receive traffic.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if !h.cfg.HasUpstream() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "CONFIG_ERROR",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
