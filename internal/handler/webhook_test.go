package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/mercadopago"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/service"
)

type stubWebhookStore struct{}

func (stubWebhookStore) CreateWebhookEvent(context.Context, *model.WebhookEvent) error { return nil }
func (stubWebhookStore) CountWebhookEvents(context.Context, string, string) (int, error) {
	return 0, nil
}
func (stubWebhookStore) GetPaymentByExternalID(context.Context, string) (*model.Payment, error) {
	return nil, nil
}
func (stubWebhookStore) UpdatePaymentStatus(context.Context, string, model.PaymentStatus, string) error {
	return nil
}

type stubProvider struct {
	payment *mercadopago.Payment
}

func (s stubProvider) CreatePayment(context.Context, *mercadopago.PaymentPayload) (*mercadopago.Payment, error) {
	return s.payment, nil
}
func (s stubProvider) GetPayment(context.Context, string) (*mercadopago.Payment, error) {
	return s.payment, nil
}
func (s stubProvider) SearchPayments(context.Context, int) (*mercadopago.SearchResult, error) {
	return &mercadopago.SearchResult{}, nil
}

func webhookApp() *fiber.App {
	webhookSvc := service.NewWebhookService(stubWebhookStore{}, stubProvider{
		payment: &mercadopago.Payment{ID: 42, Status: "approved"},
	})
	h := &Handler{webhookSvc: webhookSvc}

	app := fiber.New()
	app.Post("/webhook/payments", h.PaymentWebhook)
	return app
}

func TestPaymentWebhookMalformedBodyStill200(t *testing.T) {
	app := webhookApp()

	req := httptest.NewRequest("POST", "/webhook/payments", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, true, out["received"])
}

func TestPaymentWebhookSimulationAcknowledged(t *testing.T) {
	app := webhookApp()

	payload := `{"type": "payment", "action": "payment.created", "data": {"id": "123456"}}`
	req := httptest.NewRequest("POST", "/webhook/payments", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "simulated", out["status"])
}

func TestPaymentWebhookRealPayment200(t *testing.T) {
	app := webhookApp()

	payload := `{"type": "payment", "action": "payment.updated", "data": {"id": "42"}}`
	req := httptest.NewRequest("POST", "/webhook/payments", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPaymentWebhookUnknownType200(t *testing.T) {
	app := webhookApp()

	payload := `{"type": "plan", "data": {"id": "9"}}`
	req := httptest.NewRequest("POST", "/webhook/payments", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "ignored", out["status"])
}
