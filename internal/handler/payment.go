package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/service"
)

// CreatePayment validates checkout input, builds a payment request and
// submits it to the provider. Success answers 201 with the provider's
// receipt.
func (h *Handler) CreatePayment(c *fiber.Ctx) error {
	var input model.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Formato de solicitud inválido",
		})
	}

	req, err := h.paymentSvc.Build(&input)
	if err != nil {
		var missing *service.MissingParameterError
		if errors.As(err, &missing) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":          missing.Error(),
				"missing_fields": missing.Fields,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	receipt, err := h.paymentSvc.Submit(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMissingCredentials) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error de configuración del servidor de pagos",
			})
		}
		var provErr *service.ProviderError
		if errors.As(err, &provErr) {
			body := fiber.Map{"error": provErr.Message}
			if len(provErr.Cause) > 0 {
				body["cause"] = provErr.Cause
			}
			return c.Status(provErr.StatusCode).JSON(body)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al procesar el pago",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            receipt.ID,
		"status":        receipt.Status,
		"status_detail": receipt.StatusDetail,
		"amount":        receipt.Amount,
		"currency":      receipt.Currency,
	})
}
