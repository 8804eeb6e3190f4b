package service

import (
	"context"
	"time"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

// PromotionStore lists promotions (implemented by repository.Repository).
type PromotionStore interface {
	GetActivePromotions(ctx context.Context, now time.Time) ([]model.Promotion, error)
}

type PromotionService struct {
	store PromotionStore
	now   func() time.Time
}

func NewPromotionService(store PromotionStore) *PromotionService {
	return &PromotionService{
		store: store,
		now:   time.Now,
	}
}

// ListActive returns currently active promotions keyed by plan name. When two
// promotions target the same plan the newest expiry wins.
func (s *PromotionService) ListActive(ctx context.Context) (map[string]model.Promotion, error) {
	promos, err := s.store.GetActivePromotions(ctx, s.now())
	if err != nil {
		return nil, err
	}

	byPlan := make(map[string]model.Promotion, len(promos))
	for _, p := range promos {
		if existing, ok := byPlan[p.PlanName]; ok && existing.ExpiresAt.After(p.ExpiresAt) {
			continue
		}
		byPlan[p.PlanName] = p
	}
	return byPlan, nil
}
