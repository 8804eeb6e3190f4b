package model

import (
	"bytes"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusInProcess PaymentStatus = "in_process"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment is the local record of a checkout attempt. The provider remains the
// source of truth for the final status; rows here feed the dashboard and link
// approved payments back to the coupon they carried.
type Payment struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	ExternalID   *string       `json:"external_id,omitempty" db:"external_id"` // provider payment id
	PlanName     *string       `json:"plan_name,omitempty" db:"plan_name"`
	CouponCode   *string       `json:"coupon_code,omitempty" db:"coupon_code"`
	PayerEmail   string        `json:"payer_email" db:"payer_email"`
	Amount       float64       `json:"amount" db:"amount"`
	Currency     string        `json:"currency" db:"currency"`
	Status       PaymentStatus `json:"status" db:"status"`
	StatusDetail *string       `json:"status_detail,omitempty" db:"status_detail"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// LooseNumber accepts a JSON number or a numeric string. The hosted card form
// posts amounts as strings on some browsers, numbers on others.
type LooseNumber string

func (n *LooseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if string(b) == "null" {
		*n = ""
		return nil
	}
	*n = LooseNumber(b)
	return nil
}

// IsSet reports whether a value was present in the request body.
func (n LooseNumber) IsSet() bool {
	return n != ""
}

func (n LooseNumber) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

func (n LooseNumber) Int() (int, error) {
	return strconv.Atoi(string(n))
}

type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type Payer struct {
	Email          string          `json:"email"`
	Identification *Identification `json:"identification,omitempty"`
}

// CheckoutInput is the raw body of a create-payment request, before
// validation and defaulting.
type CheckoutInput struct {
	TransactionAmount LooseNumber `json:"transaction_amount"`
	Token             string      `json:"token"`
	Description       string      `json:"description"`
	Installments      LooseNumber `json:"installments"`
	PaymentMethodID   string      `json:"payment_method_id"`
	IssuerID          string      `json:"issuer_id"`
	Payer             *Payer      `json:"payer"`
	PlanName          string      `json:"plan_name"`
	CouponCode        string      `json:"coupon_code"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PaymentRequest is a validated, normalized checkout ready to submit to the
// provider. Notification and back URLs come from server config, never from
// client input.
type PaymentRequest struct {
	TransactionAmount float64
	Token             string
	Description       string
	Installments      int
	PaymentMethodID   string
	IssuerID          string
	Payer             Payer
	NotificationURL   string
	BackURLs          BackURLs
	AutoReturn        string
	PlanName          string
	CouponCode        string
}

type PaymentReceipt struct {
	ID           int64   `json:"id"`
	Status       string  `json:"status"`
	StatusDetail string  `json:"status_detail"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}
