package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/mercadopago"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/repository"
)

type fakeStatsStore struct {
	stats *repository.PaymentStats
	err   error
}

func (f *fakeStatsStore) GetPaymentStats(_ context.Context) (*repository.PaymentStats, error) {
	return f.stats, f.err
}

func TestGetDashboardMetricsAggregatesSearch(t *testing.T) {
	searchRes := &mercadopago.SearchResult{}
	searchRes.Paging.Total = 4
	searchRes.Results = []mercadopago.Payment{
		{ID: 1, Status: "approved", TransactionAmount: 2000, Description: "Coaching Mensual"},
		{ID: 2, Status: "approved", TransactionAmount: 1700},
		{ID: 3, Status: "rejected", TransactionAmount: 4500},
		{ID: 4, Status: "in_process", TransactionAmount: 800},
	}
	provider := &fakeProvider{searchRes: searchRes}
	store := &fakeStatsStore{stats: &repository.PaymentStats{TotalPayments: 4, Approved: 2, Revenue: 3700}}

	svc := NewMetricsService(store, provider, nil, testConfig())

	metrics, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MetricsSourceLive, metrics.Source)
	assert.Equal(t, 4, metrics.TotalPayments)
	assert.Equal(t, 2, metrics.Approved)
	assert.Equal(t, 1, metrics.Rejected)
	assert.Equal(t, 1, metrics.Pending)
	assert.Equal(t, 3700.0, metrics.Revenue)
	assert.Len(t, metrics.RecentPayments, 4)
	require.NotNil(t, metrics.Local)
	assert.Equal(t, 3700.0, metrics.Local.Revenue)
}

func TestGetDashboardMetricsDemoWithoutCredential(t *testing.T) {
	cfg := testConfig()
	cfg.MercadoPago.AccessToken = ""
	svc := NewMetricsService(&fakeStatsStore{err: errors.New("no db")}, &fakeProvider{}, nil, cfg)

	metrics, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MetricsSourceDemo, metrics.Source)
	assert.NotEmpty(t, metrics.RecentPayments)
	assert.Nil(t, metrics.Local)
}

func TestGetDashboardMetricsDemoOnProviderFailure(t *testing.T) {
	provider := &fakeProvider{searchErr: errors.New("provider down")}
	svc := NewMetricsService(&fakeStatsStore{}, provider, nil, testConfig())

	metrics, err := svc.GetDashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MetricsSourceDemo, metrics.Source)
}
