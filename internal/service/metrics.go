package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/config"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/repository"
)

const metricsCacheKey = "dashboard:metrics"

// Metric sources
const (
	MetricsSourceLive = "live"
	MetricsSourceDemo = "demo"
)

type DashboardMetrics struct {
	Source         string                   `json:"source"`
	TotalPayments  int                      `json:"total_payments"`
	Approved       int                      `json:"approved"`
	Rejected       int                      `json:"rejected"`
	Pending        int                      `json:"pending"`
	Revenue        float64                  `json:"revenue"`
	Currency       string                   `json:"currency"`
	RecentPayments []RecentPayment          `json:"recent_payments"`
	Local          *repository.PaymentStats `json:"local,omitempty"`
	GeneratedAt    time.Time                `json:"generated_at"`
}

type RecentPayment struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// StatsStore aggregates local payment rows (implemented by
// repository.Repository).
type StatsStore interface {
	GetPaymentStats(ctx context.Context) (*repository.PaymentStats, error)
}

type MetricsService struct {
	store    StatsStore
	provider ProviderClient
	redis    *redis.Client
	cfg      *config.Config
}

func NewMetricsService(store StatsStore, provider ProviderClient, rdb *redis.Client, cfg *config.Config) *MetricsService {
	return &MetricsService{
		store:    store,
		provider: provider,
		redis:    rdb,
		cfg:      cfg,
	}
}

// GetDashboardMetrics returns aggregated payment metrics: provider search
// results merged with local rows, cached in redis. Without a provider
// credential, or when the provider call fails, it serves a marked demo
// dataset so the dashboard always renders.
func (s *MetricsService) GetDashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	metrics := s.build(ctx)

	local, err := s.store.GetPaymentStats(ctx)
	if err != nil {
		log.Printf("[Metrics] failed to load local stats: %v", err)
	} else {
		metrics.Local = local
	}

	s.toCache(ctx, metrics)
	return metrics, nil
}

func (s *MetricsService) build(ctx context.Context) *DashboardMetrics {
	if s.cfg.MercadoPago.AccessToken == "" {
		log.Printf("[Metrics] no provider credential configured, serving demo data")
		return s.demoMetrics()
	}

	ctx, cancel := context.WithTimeout(ctx, config.ProviderCallTimeout)
	defer cancel()

	result, err := s.provider.SearchPayments(ctx, 50)
	if err != nil {
		log.Printf("[Metrics] provider search failed, serving demo data: %v", err)
		return s.demoMetrics()
	}

	metrics := &DashboardMetrics{
		Source:        MetricsSourceLive,
		TotalPayments: result.Paging.Total,
		Currency:      s.cfg.MercadoPago.Currency,
		GeneratedAt:   time.Now(),
	}
	for _, p := range result.Results {
		switch p.Status {
		case "approved":
			metrics.Approved++
			metrics.Revenue += p.TransactionAmount
		case "rejected":
			metrics.Rejected++
		case "pending", "in_process":
			metrics.Pending++
		}
		if len(metrics.RecentPayments) < 10 {
			metrics.RecentPayments = append(metrics.RecentPayments, RecentPayment{
				ID:          p.ID,
				Status:      p.Status,
				Amount:      p.TransactionAmount,
				Description: p.Description,
				Date:        p.DateCreated,
			})
		}
	}
	return metrics
}

func (s *MetricsService) demoMetrics() *DashboardMetrics {
	return &DashboardMetrics{
		Source:        MetricsSourceDemo,
		TotalPayments: 47,
		Approved:      38,
		Rejected:      6,
		Pending:       3,
		Revenue:       68400,
		Currency:      s.cfg.MercadoPago.Currency,
		RecentPayments: []RecentPayment{
			{ID: 1001, Status: "approved", Amount: 2000, Description: "Coaching Mensual", Date: "2025-01-10T14:32:00.000-03:00"},
			{ID: 1002, Status: "approved", Amount: 1700, Description: "Coaching Mensual (UMBRA15)", Date: "2025-01-09T11:05:00.000-03:00"},
			{ID: 1003, Status: "rejected", Amount: 4500, Description: "Programa Transformación", Date: "2025-01-08T19:48:00.000-03:00"},
			{ID: 1004, Status: "pending", Amount: 800, Description: "Sesión Individual", Date: "2025-01-08T09:12:00.000-03:00"},
		},
		GeneratedAt: time.Now(),
	}
}

func (s *MetricsService) fromCache(ctx context.Context) *DashboardMetrics {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, metricsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[Metrics] cache read failed: %v", err)
		}
		return nil
	}
	var metrics DashboardMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		log.Printf("[Metrics] cache decode failed: %v", err)
		return nil
	}
	return &metrics
}

func (s *MetricsService) toCache(ctx context.Context, metrics *DashboardMetrics) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(metrics)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, metricsCacheKey, data, config.MetricsCacheTTL).Err(); err != nil {
		log.Printf("[Metrics] cache write failed: %v", err)
	}
}
