package service

import (
	"context"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

// PlanStore lists coaching plans (implemented by repository.Repository).
type PlanStore interface {
	GetActivePlans(ctx context.Context) ([]model.Plan, error)
}

type PlanService struct {
	store PlanStore
}

func NewPlanService(store PlanStore) *PlanService {
	return &PlanService{store: store}
}

func (s *PlanService) GetActivePlans(ctx context.Context) ([]model.Plan, error) {
	return s.store.GetActivePlans(ctx)
}
