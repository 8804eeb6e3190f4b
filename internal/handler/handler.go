package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/config"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/service"
)

type Handler struct {
	cfg          *config.Config
	planSvc      *service.PlanService
	couponSvc    *service.CouponService
	paymentSvc   *service.PaymentService
	promotionSvc *service.PromotionService
	webhookSvc   *service.WebhookService
	metricsSvc   *service.MetricsService
}

func New(
	cfg *config.Config,
	planSvc *service.PlanService,
	couponSvc *service.CouponService,
	paymentSvc *service.PaymentService,
	promotionSvc *service.PromotionService,
	webhookSvc *service.WebhookService,
	metricsSvc *service.MetricsService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		planSvc:      planSvc,
		couponSvc:    couponSvc,
		paymentSvc:   paymentSvc,
		promotionSvc: promotionSvc,
		webhookSvc:   webhookSvc,
		metricsSvc:   metricsSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
