package handler

import (
	"github.com/gofiber/fiber/v2"
)

// GetDashboardMetrics serves aggregated payment metrics. Auth is enforced by
// middleware.DashboardAuth on the route.
func (h *Handler) GetDashboardMetrics(c *fiber.Ctx) error {
	metrics, err := h.metricsSvc.GetDashboardMetrics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar las métricas",
		})
	}
	return c.JSON(metrics)
}
