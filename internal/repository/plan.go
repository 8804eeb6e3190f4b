package repository

import (
	"context"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

func (r *Repository) GetActivePlans(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	query := "SELECT * FROM plans WHERE is_active = true ORDER BY sort_order ASC"
	err := r.db.SelectContext(ctx, &plans, query)
	return plans, err
}
