package model

import (
	"time"

	"github.com/google/uuid"
)

// WebhookNotification is the envelope the provider POSTs on payment status
// changes.
type WebhookNotification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// WebhookEvent is the persisted trace of a received notification. The
// transport always acknowledges with 200, so this table is where operators
// look when fulfillment went wrong.
type WebhookEvent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`
	Action    string    `json:"action" db:"action"`
	PaymentID string    `json:"payment_id" db:"payment_id"`
	Status    *string   `json:"status,omitempty" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
