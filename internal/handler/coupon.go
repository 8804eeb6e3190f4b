package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/service"
)

type ValidateCouponRequest struct {
	Code          string  `json:"code"`
	OriginalPrice float64 `json:"originalPrice"`
	PlanName      string  `json:"planName"`
}

// ValidateCoupon resolves a coupon against a price and optional plan. A known
// but inapplicable coupon returns 400 with every violated rule; an unknown
// code returns 404.
func (h *Handler) ValidateCoupon(c *fiber.Ctx) error {
	var req ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid": false,
			"error": "Formato de solicitud inválido",
		})
	}

	result, err := h.couponSvc.Resolve(c.Context(), req.Code, req.OriginalPrice, req.PlanName)
	if err != nil {
		var notApplicable *service.CouponNotApplicableError
		switch {
		case errors.Is(err, service.ErrMissingCouponParams):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"valid": false,
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrCouponNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"valid": false,
				"error": err.Error(),
			})
		case errors.As(err, &notApplicable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"valid":  false,
				"error":  notApplicable.Error(),
				"errors": notApplicable.Reasons,
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"valid": false,
				"error": "Error interno al validar el cupón",
			})
		}
	}

	return c.JSON(fiber.Map{
		"valid":    true,
		"coupon":   result.Coupon,
		"pricing":  result.Pricing,
		"metadata": result.Metadata,
	})
}
