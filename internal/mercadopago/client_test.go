package mercadopago

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentDecodesResponse(t *testing.T) {
	var gotAuth, gotIdempotency string
	var gotBody PaymentPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payments", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Payment{
			ID:                12345,
			Status:            "approved",
			StatusDetail:      "accredited",
			TransactionAmount: 1700,
			CurrencyID:        "ARS",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "TEST-token")
	payment, err := client.CreatePayment(context.Background(), &PaymentPayload{
		TransactionAmount: 1700,
		Token:             "card-token",
		Description:       "Coaching Mensual",
		Installments:      1,
		PaymentMethodID:   "visa",
		Payer:             Payer{Email: "ana@example.com"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12345), payment.ID)
	assert.Equal(t, "approved", payment.Status)
	assert.Equal(t, "Bearer TEST-token", gotAuth)
	assert.NotEmpty(t, gotIdempotency)
	assert.Equal(t, "ana@example.com", gotBody.Payer.Email)
}

func TestCreatePaymentErrorBodyParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"message": "Invalid payment_method_id",
			"status": 400,
			"cause": [{"code": "invalid_parameter", "description": "payment_method_id inválido"}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "TEST-token")
	_, err := client.CreatePayment(context.Background(), &PaymentPayload{})

	var apiErr *ErrorResponse
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.NotNil(t, apiErr.FirstCause())
	assert.Equal(t, CauseInvalidParameter, apiErr.FirstCause().Code)
}

func TestCreatePaymentNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "TEST-token")
	_, err := client.CreatePayment(context.Background(), &PaymentPayload{})

	var apiErr *ErrorResponse
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Nil(t, apiErr.FirstCause())
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/987", r.URL.Path)
		json.NewEncoder(w).Encode(Payment{ID: 987, Status: "rejected", StatusDetail: "cc_rejected_insufficient_amount"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "TEST-token")
	payment, err := client.GetPayment(context.Background(), "987")

	require.NoError(t, err)
	assert.Equal(t, "rejected", payment.Status)
}

func TestSearchPayments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/search", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "date_created", q.Get("sort"))
		require.Equal(t, "desc", q.Get("criteria"))
		require.Equal(t, "50", q.Get("limit"))

		json.NewEncoder(w).Encode(SearchResult{
			Results: []Payment{
				{ID: 2, Status: "approved", TransactionAmount: 2000},
				{ID: 1, Status: "pending", TransactionAmount: 800},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "TEST-token")
	result, err := client.SearchPayments(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "approved", result.Results[0].Status)
}
