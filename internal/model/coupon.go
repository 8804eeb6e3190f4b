package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage" // Percentage points off the original price
	DiscountTypeFixed      DiscountType = "fixed"      // Fixed amount in currency units
)

// ValidPlansAll is the sentinel meaning the coupon applies to every plan.
const ValidPlansAll = "all"

type Coupon struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	Code          string       `json:"code" db:"code"`
	DiscountType  DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue float64      `json:"discount_value" db:"discount_value"`
	ExpiresAt     time.Time    `json:"expires_at" db:"expires_at"`
	MaxUses       *int         `json:"max_uses,omitempty" db:"max_uses"`
	UsedCount     int          `json:"used_count" db:"used_count"`
	MinimumAmount float64      `json:"minimum_amount" db:"minimum_amount"`
	ValidPlans    string       `json:"valid_plans" db:"valid_plans"` // comma-separated plan names or "all"
	IsActive      bool         `json:"is_active" db:"is_active"`
	Description   *string      `json:"description,omitempty" db:"description"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

type CouponRedemption struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CouponID   uuid.UUID `json:"coupon_id" db:"coupon_id"`
	PayerEmail string    `json:"payer_email" db:"payer_email"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// IsExpired reports whether the coupon has passed its expiry at the given time.
func (c *Coupon) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// UsageExhausted reports whether the usage limit has been reached.
// Coupons without a limit never exhaust.
func (c *Coupon) UsageExhausted() bool {
	return c.MaxUses != nil && c.UsedCount >= *c.MaxUses
}

// MeetsMinimum reports whether the purchase amount satisfies the coupon's
// minimum order amount.
func (c *Coupon) MeetsMinimum(amount float64) bool {
	return amount >= c.MinimumAmount
}

// AppliesToPlan reports whether the coupon covers the given plan. Matching is
// case-insensitive and by substring, so "Mensual" matches "Coaching Mensual".
// An empty plan name only matches coupons valid for all plans.
func (c *Coupon) AppliesToPlan(planName string) bool {
	for _, entry := range strings.Split(c.ValidPlans, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.EqualFold(entry, ValidPlansAll) {
			return true
		}
		if planName == "" {
			continue
		}
		if strings.Contains(strings.ToLower(planName), strings.ToLower(entry)) ||
			strings.Contains(strings.ToLower(entry), strings.ToLower(planName)) {
			return true
		}
	}
	return false
}

// Pricing is the outcome of applying a coupon to an original price. Amounts
// are whole currency units.
type Pricing struct {
	OriginalPrice      float64 `json:"original_price"`
	DiscountAmount     float64 `json:"discount_amount"`
	FinalPrice         float64 `json:"final_price"`
	DiscountPercentage int     `json:"discount_percentage"`
}

// CouponInfo echoes the applied coupon back to the client.
type CouponInfo struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	Description   string       `json:"description"`
	ExpiresAt     time.Time    `json:"expires_at"`
}

// CouponMetadata carries display extras for a valid coupon.
type CouponMetadata struct {
	RemainingUses string `json:"remaining_uses"` // count, or "unlimited"
}

type CouponResult struct {
	Coupon   CouponInfo     `json:"coupon"`
	Pricing  Pricing        `json:"pricing"`
	Metadata CouponMetadata `json:"metadata"`
}
