package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

// PaymentWebhook receives asynchronous provider notifications. It always
// acknowledges with 200 so the provider does not retry-storm; internal
// failures are logged and traced in webhook_events, never surfaced here.
func (h *Handler) PaymentWebhook(c *fiber.Ctx) error {
	var n model.WebhookNotification
	if err := c.BodyParser(&n); err != nil {
		log.Printf("[Webhook] malformed notification body: %v", err)
		return c.JSON(fiber.Map{
			"received": true,
			"status":   "malformed",
		})
	}

	outcome := h.webhookSvc.Process(c.Context(), &n)

	return c.JSON(fiber.Map{
		"received": true,
		"status":   outcome,
		"type":     n.Type,
		"id":       n.Data.ID,
	})
}
