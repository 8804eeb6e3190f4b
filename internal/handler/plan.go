package handler

import (
	"github.com/gofiber/fiber/v2"
)

// GetPlans lists the active coaching plans shown on the pricing page.
func (h *Handler) GetPlans(c *fiber.Ctx) error {
	plans, err := h.planSvc.GetActivePlans(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar los planes",
		})
	}
	return c.JSON(fiber.Map{
		"plans": plans,
	})
}
