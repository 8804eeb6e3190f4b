package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/mercadopago"
)

// Client forwards payment events to a downstream automation webhook
// (a Make.com scenario in production).
type Client struct {
	webhookURL string
	client     *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type paymentEvent struct {
	Event       string  `json:"event"`
	PaymentID   int64   `json:"payment_id"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	PayerEmail  string  `json:"payer_email"`
	SentAt      string  `json:"sent_at"`
}

func (c *Client) NotifyPayment(ctx context.Context, event string, payment *mercadopago.Payment) error {
	body, err := json.Marshal(paymentEvent{
		Event:       event,
		PaymentID:   payment.ID,
		Status:      payment.Status,
		Amount:      payment.TransactionAmount,
		Currency:    payment.CurrencyID,
		Description: payment.Description,
		PayerEmail:  payment.Payer.Email,
		SentAt:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("automation webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("automation webhook returned status %d", resp.StatusCode)
	}
	return nil
}
