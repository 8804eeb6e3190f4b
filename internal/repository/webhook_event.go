package repository

import (
	"context"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

// CreateWebhookEvent persists a received provider notification.
func (r *Repository) CreateWebhookEvent(ctx context.Context, event *model.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (type, action, payment_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		event.Type,
		event.Action,
		event.PaymentID,
		event.Status,
	).Scan(&event.ID, &event.CreatedAt)
}

// CountWebhookEvents reports how many notifications were already recorded for
// a provider payment id at a given status. Used to dispatch fulfillment once
// per status transition even when the provider retries.
func (r *Repository) CountWebhookEvents(ctx context.Context, paymentID, status string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM webhook_events
		WHERE payment_id = $1 AND status = $2`, paymentID, status)
	return count, err
}
