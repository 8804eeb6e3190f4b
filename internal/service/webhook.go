package service

import (
	"context"
	"log"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/config"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/mercadopago"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

// SimulationPaymentID is the sentinel id the provider sends when testing a
// webhook endpoint from its dashboard. It must be acknowledged without a
// payment lookup.
const SimulationPaymentID = "123456"

// Webhook processing outcomes, echoed in the acknowledgment body.
const (
	WebhookOutcomeIgnored   = "ignored"
	WebhookOutcomeSimulated = "simulated"
	WebhookOutcomeProcessed = "processed"
	WebhookOutcomeError     = "error"
)

// Notifier sends payment event messages to the operator chat (implemented by
// telegram.Bot).
type Notifier interface {
	SendPaymentApproved(payment *mercadopago.Payment) error
	SendPaymentRejected(payment *mercadopago.Payment) error
	SendPaymentPending(payment *mercadopago.Payment) error
}

// AutomationClient forwards payment events to the downstream automation
// webhook (implemented by automation.Client).
type AutomationClient interface {
	NotifyPayment(ctx context.Context, event string, payment *mercadopago.Payment) error
}

// WebhookStore persists notification traces and local payment state
// (implemented by repository.Repository).
type WebhookStore interface {
	CreateWebhookEvent(ctx context.Context, event *model.WebhookEvent) error
	CountWebhookEvents(ctx context.Context, paymentID, status string) (int, error)
	GetPaymentByExternalID(ctx context.Context, externalID string) (*model.Payment, error)
	UpdatePaymentStatus(ctx context.Context, externalID string, status model.PaymentStatus, statusDetail string) error
}

type WebhookService struct {
	store      WebhookStore
	provider   ProviderClient
	couponSvc  *CouponService
	notifier   Notifier
	automation AutomationClient
}

func NewWebhookService(store WebhookStore, provider ProviderClient) *WebhookService {
	return &WebhookService{
		store:    store,
		provider: provider,
	}
}

// SetCouponService sets the coupon service (to avoid circular deps).
func (s *WebhookService) SetCouponService(couponSvc *CouponService) {
	s.couponSvc = couponSvc
}

// SetNotifier sets the notifier for payment event messages.
func (s *WebhookService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// SetAutomation sets the downstream automation client.
func (s *WebhookService) SetAutomation(automation AutomationClient) {
	s.automation = automation
}

// Process handles one provider notification. It never returns an error: the
// transport must acknowledge with 200 no matter what happened internally, so
// every failure here is logged and swallowed. The returned outcome is
// informational only.
func (s *WebhookService) Process(ctx context.Context, n *model.WebhookNotification) string {
	if n.Type != "payment" {
		log.Printf("[Webhook] ignoring notification of type %q (action %q)", n.Type, n.Action)
		return WebhookOutcomeIgnored
	}

	paymentID := n.Data.ID
	if paymentID == "" {
		log.Printf("[Webhook] payment notification without payment id (action %q)", n.Action)
		return WebhookOutcomeIgnored
	}

	if paymentID == SimulationPaymentID {
		log.Printf("[Webhook] simulation notification acknowledged")
		return WebhookOutcomeSimulated
	}

	ctx, cancel := context.WithTimeout(ctx, config.ProviderCallTimeout)
	defer cancel()

	payment, err := s.provider.GetPayment(ctx, paymentID)
	if err != nil {
		log.Printf("[Webhook] failed to fetch payment %s: %v", paymentID, err)
		return WebhookOutcomeError
	}

	seen, err := s.store.CountWebhookEvents(ctx, paymentID, payment.Status)
	if err != nil {
		log.Printf("[Webhook] failed to check prior events for payment %s: %v", paymentID, err)
	}

	event := &model.WebhookEvent{
		Type:      n.Type,
		Action:    n.Action,
		PaymentID: paymentID,
		Status:    &payment.Status,
	}
	if err := s.store.CreateWebhookEvent(ctx, event); err != nil {
		log.Printf("[Webhook] failed to record event for payment %s: %v", paymentID, err)
	}

	if err := s.store.UpdatePaymentStatus(ctx, paymentID, model.PaymentStatus(payment.Status), payment.StatusDetail); err != nil {
		log.Printf("[Webhook] failed to update local payment %s: %v", paymentID, err)
	}

	// Provider retries resend the same status; dispatch fulfillment only on
	// the first notification for this status.
	if seen > 0 {
		log.Printf("[Webhook] payment %s already dispatched at status %s, skipping fulfillment", paymentID, payment.Status)
		return WebhookOutcomeProcessed
	}

	s.dispatch(ctx, paymentID, payment)
	return WebhookOutcomeProcessed
}

func (s *WebhookService) dispatch(ctx context.Context, paymentID string, payment *mercadopago.Payment) {
	switch payment.Status {
	case "approved":
		s.redeemCoupon(ctx, paymentID, payment)
		if s.notifier != nil {
			if err := s.notifier.SendPaymentApproved(payment); err != nil {
				log.Printf("[Webhook] failed to notify approved payment %s: %v", paymentID, err)
			}
		}
		s.notifyAutomation(ctx, "payment_approved", paymentID, payment)
	case "rejected":
		if s.notifier != nil {
			if err := s.notifier.SendPaymentRejected(payment); err != nil {
				log.Printf("[Webhook] failed to notify rejected payment %s: %v", paymentID, err)
			}
		}
		s.notifyAutomation(ctx, "payment_rejected", paymentID, payment)
	case "pending", "in_process":
		if s.notifier != nil {
			if err := s.notifier.SendPaymentPending(payment); err != nil {
				log.Printf("[Webhook] failed to notify pending payment %s: %v", paymentID, err)
			}
		}
		s.notifyAutomation(ctx, "payment_pending", paymentID, payment)
	default:
		log.Printf("[Webhook] payment %s has unhandled status %q", paymentID, payment.Status)
	}
}

func (s *WebhookService) notifyAutomation(ctx context.Context, event, paymentID string, payment *mercadopago.Payment) {
	if s.automation == nil {
		return
	}
	if err := s.automation.NotifyPayment(ctx, event, payment); err != nil {
		log.Printf("[Webhook] automation notify failed for payment %s: %v", paymentID, err)
	}
}

// redeemCoupon consumes a use of the coupon an approved payment carried, if
// any.
func (s *WebhookService) redeemCoupon(ctx context.Context, paymentID string, payment *mercadopago.Payment) {
	if s.couponSvc == nil {
		return
	}
	local, err := s.store.GetPaymentByExternalID(ctx, paymentID)
	if err != nil {
		log.Printf("[Webhook] failed to load local payment %s: %v", paymentID, err)
		return
	}
	if local == nil || local.CouponCode == nil || *local.CouponCode == "" {
		return
	}
	if err := s.couponSvc.Redeem(ctx, *local.CouponCode, payment.Payer.Email); err != nil {
		log.Printf("[Webhook] failed to redeem coupon %s for payment %s: %v", *local.CouponCode, paymentID, err)
	}
}
