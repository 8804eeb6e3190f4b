package handler

import (
	"github.com/gofiber/fiber/v2"
)

// GetActivePromotions returns currently active promotions keyed by plan name.
func (h *Handler) GetActivePromotions(c *fiber.Ctx) error {
	promos, err := h.promotionSvc.ListActive(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar las promociones",
		})
	}
	return c.JSON(promos)
}
