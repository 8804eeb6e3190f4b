package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

// GetCouponByCode retrieves a coupon by its code. Lookup is case-insensitive;
// codes are stored upper-cased. Returns (nil, nil) when the code is unknown.
func (r *Repository) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.GetContext(ctx, &coupon, `
		SELECT * FROM coupons WHERE code = $1`, strings.ToUpper(strings.TrimSpace(code)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// RedeemCoupon records a redemption and increments the usage counter in one
// transaction, refusing when the limit is already reached. This is the atomic
// counter behind remaining-uses.
func (r *Repository) RedeemCoupon(ctx context.Context, couponID uuid.UUID, payerEmail string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE coupons SET used_count = used_count + 1
		WHERE id = $1 AND (max_uses IS NULL OR used_count < max_uses)`, couponID)
	if err != nil {
		return fmt.Errorf("failed to increment used count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponExhausted
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO coupon_redemptions (coupon_id, payer_email)
		VALUES ($1, $2)`, couponID, payerEmail)
	if err != nil {
		return fmt.Errorf("failed to record redemption: %w", err)
	}

	return tx.Commit()
}

var ErrCouponExhausted = errors.New("coupon usage limit reached")

// ListCoupons lists coupons ordered by creation date, newest first.
func (r *Repository) ListCoupons(ctx context.Context, limit, offset int) ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.db.SelectContext(ctx, &coupons, `
		SELECT * FROM coupons
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return coupons, err
}
