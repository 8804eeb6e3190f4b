package repository

import (
	"context"
	"time"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

// GetActivePromotions returns promotions that are active and unexpired at the
// given time, ordered by plan name.
func (r *Repository) GetActivePromotions(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	var promos []model.Promotion
	err := r.db.SelectContext(ctx, &promos, `
		SELECT * FROM promotions
		WHERE is_active = true AND expires_at >= $1
		ORDER BY plan_name ASC`, now)
	return promos, err
}
