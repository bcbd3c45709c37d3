package handlers

import (
	"time"

	"github.com/GaganMittal847/Companio/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	port int
}

func NewHealthHandler(port int) *HealthHandler {
	return &HealthHandler{port: port}
}

// Health answers liveness probes with a flat body load balancers can parse.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "UP",
		"timestamp": utils.RFC3339(time.Now()),
		"port":      h.port,
	})
}
