package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppliesToPlan(t *testing.T) {
	tests := []struct {
		name       string
		validPlans string
		planName   string
		want       bool
	}{
		{"all matches any plan", "all", "Coaching Mensual", true},
		{"all matches empty plan", "all", "", true},
		{"exact match", "Coaching Mensual", "Coaching Mensual", true},
		{"entry contained in plan", "Transformación,Individual", "Programa Transformación", true},
		{"plan contained in entry", "Programa Transformación", "Transformación", true},
		{"case insensitive", "coaching mensual", "Coaching Mensual", true},
		{"no match", "Transformación,Individual", "Coaching Mensual", false},
		{"empty plan against named list", "Transformación", "", false},
		{"trims spaces around entries", "Transformación, Individual", "Sesión Individual", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Coupon{ValidPlans: tt.validPlans}
			assert.Equal(t, tt.want, c.AppliesToPlan(tt.planName))
		})
	}
}

func TestUsageExhausted(t *testing.T) {
	limit := 10

	unlimited := Coupon{UsedCount: 1000000}
	assert.False(t, unlimited.UsageExhausted())

	capped := Coupon{MaxUses: &limit, UsedCount: 9}
	assert.False(t, capped.UsageExhausted())

	capped.UsedCount = 10
	assert.True(t, capped.UsageExhausted())
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	c := Coupon{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, c.IsExpired(now))

	c.ExpiresAt = now.Add(-time.Hour)
	assert.True(t, c.IsExpired(now))
}

func TestLooseNumberAcceptsNumberOrString(t *testing.T) {
	var in CheckoutInput
	require.NoError(t, json.Unmarshal([]byte(`{"transaction_amount": 2000, "installments": "3"}`), &in))

	amount, err := in.TransactionAmount.Float64()
	require.NoError(t, err)
	assert.Equal(t, float64(2000), amount)

	installments, err := in.Installments.Int()
	require.NoError(t, err)
	assert.Equal(t, 3, installments)
}

func TestLooseNumberAbsentAndNull(t *testing.T) {
	var in CheckoutInput
	require.NoError(t, json.Unmarshal([]byte(`{"installments": null}`), &in))

	assert.False(t, in.TransactionAmount.IsSet())
	assert.False(t, in.Installments.IsSet())
}

func TestLooseNumberRejectsNonNumeric(t *testing.T) {
	var in CheckoutInput
	require.NoError(t, json.Unmarshal([]byte(`{"transaction_amount": "mil"}`), &in))

	require.True(t, in.TransactionAmount.IsSet())
	_, err := in.TransactionAmount.Float64()
	assert.Error(t, err)
}
