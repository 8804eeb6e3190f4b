package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Cause codes the provider reports on a failed payment creation.
const (
	CauseInvalidParameter = "invalid_parameter"
	CauseUnauthorized     = "unauthorized"
)

type Client struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PaymentPayload is the create-payment request body. Notification and back
// URLs are filled from server config upstream.
type PaymentPayload struct {
	TransactionAmount float64         `json:"transaction_amount"`
	Token             string          `json:"token"`
	Description       string          `json:"description"`
	Installments      int             `json:"installments"`
	PaymentMethodID   string          `json:"payment_method_id"`
	IssuerID          string          `json:"issuer_id,omitempty"`
	Payer             Payer           `json:"payer"`
	NotificationURL   string          `json:"notification_url,omitempty"`
	BackURLs          *BackURLs       `json:"back_urls,omitempty"`
	AutoReturn        string          `json:"auto_return,omitempty"`
	Metadata          map[string]any  `json:"metadata,omitempty"`
}

type Payer struct {
	Email          string          `json:"email"`
	Identification *Identification `json:"identification,omitempty"`
}

type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// Payment is the provider's payment resource, trimmed to the fields this
// service reads.
type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"status_detail"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
	Description       string  `json:"description"`
	DateCreated       string  `json:"date_created"`
	PaymentMethodID   string  `json:"payment_method_id"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
}

type SearchResult struct {
	Paging struct {
		Total int `json:"total"`
	} `json:"paging"`
	Results []Payment `json:"results"`
}

// ErrorResponse is the provider's structured error body. Cause is ordered;
// the first entry drives classification.
type ErrorResponse struct {
	Message string  `json:"message"`
	Status  int     `json:"status"`
	Cause   []Cause `json:"cause"`
}

type Cause struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *ErrorResponse) Error() string {
	if len(e.Cause) > 0 {
		return fmt.Sprintf("mercadopago: %s (%s)", e.Cause[0].Description, e.Cause[0].Code)
	}
	return "mercadopago: " + e.Message
}

// FirstCause returns the leading cause entry, or nil when the provider sent
// none.
func (e *ErrorResponse) FirstCause() *Cause {
	if len(e.Cause) == 0 {
		return nil
	}
	return &e.Cause[0]
}

func (c *Client) CreatePayment(ctx context.Context, payload *PaymentPayload) (*Payment, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("X-Idempotency-Key", uuid.NewString())

	var payment Payment
	if err := c.do(req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	var payment Payment
	if err := c.do(req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// SearchPayments returns the most recent payments, newest first.
func (c *Client) SearchPayments(ctx context.Context, limit int) (*SearchResult, error) {
	url := c.baseURL + "/v1/payments/search?sort=date_created&criteria=desc&limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	var result SearchResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mercadopago request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read mercadopago response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &ErrorResponse{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode mercadopago response: %w", err)
	}
	return nil
}
