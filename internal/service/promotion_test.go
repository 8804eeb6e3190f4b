package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

type fakePromotionStore struct {
	promos []model.Promotion
}

func (f *fakePromotionStore) GetActivePromotions(_ context.Context, now time.Time) ([]model.Promotion, error) {
	var active []model.Promotion
	for _, p := range f.promos {
		if p.IsCurrent(now) {
			active = append(active, p)
		}
	}
	return active, nil
}

func TestListActiveKeysByPlan(t *testing.T) {
	store := &fakePromotionStore{promos: []model.Promotion{
		{PlanName: "Coaching Mensual", DiscountValue: 15, ExpiresAt: testNow.Add(time.Hour), IsActive: true},
		{PlanName: "Programa Transformación", DiscountValue: 25, ExpiresAt: testNow.Add(time.Hour), IsActive: true},
		{PlanName: "Sesión Individual", DiscountValue: 10, ExpiresAt: testNow.Add(-time.Hour), IsActive: true},
		{PlanName: "Coaching Mensual", DiscountValue: 5, ExpiresAt: testNow.Add(30 * time.Minute), IsActive: true},
		{PlanName: "Sesión Individual", DiscountValue: 20, ExpiresAt: testNow.Add(time.Hour), IsActive: false},
	}}
	svc := NewPromotionService(store)
	svc.now = func() time.Time { return testNow }

	promos, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, promos, 2)
	// Expired and inactive rows are excluded entirely.
	assert.NotContains(t, promos, "Sesión Individual")
	// When two promotions target one plan the later expiry wins.
	assert.Equal(t, 15.0, promos["Coaching Mensual"].DiscountValue)
	assert.Equal(t, 25.0, promos["Programa Transformación"].DiscountValue)
}
