package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

// CreatePayment inserts a local payment record and fills in generated fields.
func (r *Repository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (external_id, plan_name, coupon_code, payer_email, amount, currency, status, status_detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		payment.ExternalID,
		payment.PlanName,
		payment.CouponCode,
		payment.PayerEmail,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.StatusDetail,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

// GetPaymentByExternalID looks up a local payment by the provider's payment
// id. Returns (nil, nil) when no record exists.
func (r *Repository) GetPaymentByExternalID(ctx context.Context, externalID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.GetContext(ctx, &payment, `
		SELECT * FROM payments WHERE external_id = $1`, externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdatePaymentStatus updates status and detail for a payment identified by
// the provider's payment id.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, externalID string, status model.PaymentStatus, statusDetail string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $2, status_detail = $3, updated_at = now()
		WHERE external_id = $1`, externalID, status, statusDetail)
	return err
}

// PaymentStats aggregates local payment rows for the dashboard.
type PaymentStats struct {
	TotalPayments int     `db:"total_payments"`
	Approved      int     `db:"approved"`
	Rejected      int     `db:"rejected"`
	Pending       int     `db:"pending"`
	Revenue       float64 `db:"revenue"`
}

func (r *Repository) GetPaymentStats(ctx context.Context) (*PaymentStats, error) {
	var stats PaymentStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS total_payments,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
			COUNT(*) FILTER (WHERE status IN ('pending', 'in_process')) AS pending,
			COALESCE(SUM(amount) FILTER (WHERE status = 'approved'), 0) AS revenue
		FROM payments`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
