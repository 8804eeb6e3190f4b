package model

import (
	"time"

	"github.com/google/uuid"
)

// Promotion is a plan-scoped discount surfaced proactively on the pricing
// page. No code entry is required: the client applies AutoApplyCode on the
// user's behalf.
type Promotion struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	PlanName      string       `json:"plan_name" db:"plan_name"`
	DiscountType  DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue float64      `json:"discount_value" db:"discount_value"`
	Description   string       `json:"description" db:"description"`
	AutoApplyCode string       `json:"auto_apply_code" db:"auto_apply_code"`
	ExpiresAt     time.Time    `json:"expires_at" db:"expires_at"`
	IsActive      bool         `json:"is_active" db:"is_active"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

// IsCurrent reports whether the promotion should be surfaced at the given time.
func (p *Promotion) IsCurrent(now time.Time) bool {
	return p.IsActive && !now.After(p.ExpiresAt)
}
