package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/config"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/mercadopago"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

var (
	ErrIncompletePayer    = errors.New("El email del comprador es requerido")
	ErrInvalidAmount      = errors.New("El monto de la transacción no es válido")
	ErrMissingCredentials = errors.New("payment provider credentials are not configured")
)

// MissingParameterError lists every required checkout field absent from the
// request, not just the first.
type MissingParameterError struct {
	Fields []string
}

func (e *MissingParameterError) Error() string {
	return "Faltan campos requeridos: " + strings.Join(e.Fields, ", ")
}

// ProviderError is a provider failure classified into an HTTP-appropriate
// outcome. Cause carries the raw provider detail and is only attached outside
// production.
type ProviderError struct {
	StatusCode int
	Message    string
	Cause      []mercadopago.Cause
}

func (e *ProviderError) Error() string {
	return e.Message
}

// ProviderClient is the subset of the payment provider this service calls
// (implemented by mercadopago.Client).
type ProviderClient interface {
	CreatePayment(ctx context.Context, payload *mercadopago.PaymentPayload) (*mercadopago.Payment, error)
	GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error)
	SearchPayments(ctx context.Context, limit int) (*mercadopago.SearchResult, error)
}

// PaymentStore records checkout attempts locally (implemented by
// repository.Repository).
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
}

type PaymentService struct {
	store    PaymentStore
	provider ProviderClient
	cfg      *config.Config
}

func NewPaymentService(store PaymentStore, provider ProviderClient, cfg *config.Config) *PaymentService {
	return &PaymentService{
		store:    store,
		provider: provider,
		cfg:      cfg,
	}
}

// Build validates raw checkout input, applies defaults and constructs a
// payment request. Notification and back URLs always come from config;
// client-supplied destinations are never honored.
func (s *PaymentService) Build(input *model.CheckoutInput) (*model.PaymentRequest, error) {
	var missing []string
	if !input.TransactionAmount.IsSet() {
		missing = append(missing, "transaction_amount")
	}
	if input.Token == "" {
		missing = append(missing, "token")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if input.PaymentMethodID == "" {
		missing = append(missing, "payment_method_id")
	}
	if len(missing) > 0 {
		return nil, &MissingParameterError{Fields: missing}
	}

	if input.Payer == nil || strings.TrimSpace(input.Payer.Email) == "" {
		return nil, ErrIncompletePayer
	}

	amount, err := input.TransactionAmount.Float64()
	if err != nil || amount <= 0 {
		return nil, ErrInvalidAmount
	}

	installments := 1
	if input.Installments.IsSet() {
		if n, err := input.Installments.Int(); err == nil && n > 0 {
			installments = n
		}
	}

	payer := model.Payer{
		Email:          strings.TrimSpace(input.Payer.Email),
		Identification: input.Payer.Identification,
	}
	if payer.Identification == nil || payer.Identification.Type == "" || payer.Identification.Number == "" {
		payer.Identification = &model.Identification{
			Type:   s.cfg.MercadoPago.DefaultIdentificationType,
			Number: s.cfg.MercadoPago.DefaultIdentificationNumber,
		}
		log.Printf("[Payment] payer %s sent no identification, using placeholder %s", payer.Email, payer.Identification.Type)
	}

	return &model.PaymentRequest{
		TransactionAmount: amount,
		Token:             input.Token,
		Description:       input.Description,
		Installments:      installments,
		PaymentMethodID:   input.PaymentMethodID,
		IssuerID:          input.IssuerID,
		Payer:             payer,
		NotificationURL:   s.cfg.MercadoPago.NotificationURL,
		BackURLs: model.BackURLs{
			Success: s.cfg.MercadoPago.SuccessURL,
			Failure: s.cfg.MercadoPago.FailureURL,
			Pending: s.cfg.MercadoPago.PendingURL,
		},
		AutoReturn: s.cfg.MercadoPago.AutoReturn,
		PlanName:   input.PlanName,
		CouponCode: strings.ToUpper(strings.TrimSpace(input.CouponCode)),
	}, nil
}

// Submit sends a validated request to the provider and records the attempt
// locally. Provider failures come back as *ProviderError.
func (s *PaymentService) Submit(ctx context.Context, req *model.PaymentRequest) (*model.PaymentReceipt, error) {
	if s.cfg.MercadoPago.AccessToken == "" {
		return nil, ErrMissingCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, config.ProviderCallTimeout)
	defer cancel()

	payload := &mercadopago.PaymentPayload{
		TransactionAmount: req.TransactionAmount,
		Token:             req.Token,
		Description:       req.Description,
		Installments:      req.Installments,
		PaymentMethodID:   req.PaymentMethodID,
		IssuerID:          req.IssuerID,
		Payer: mercadopago.Payer{
			Email: req.Payer.Email,
			Identification: &mercadopago.Identification{
				Type:   req.Payer.Identification.Type,
				Number: req.Payer.Identification.Number,
			},
		},
		NotificationURL: req.NotificationURL,
		BackURLs: &mercadopago.BackURLs{
			Success: req.BackURLs.Success,
			Failure: req.BackURLs.Failure,
			Pending: req.BackURLs.Pending,
		},
		AutoReturn: req.AutoReturn,
	}
	if req.PlanName != "" || req.CouponCode != "" {
		payload.Metadata = map[string]any{}
		if req.PlanName != "" {
			payload.Metadata["plan_name"] = req.PlanName
		}
		if req.CouponCode != "" {
			payload.Metadata["coupon_code"] = req.CouponCode
		}
	}

	payment, err := s.provider.CreatePayment(ctx, payload)
	if err != nil {
		return nil, s.classifyProviderError(err)
	}

	currency := payment.CurrencyID
	if currency == "" {
		currency = s.cfg.MercadoPago.Currency
	}

	s.recordPayment(ctx, req, payment, currency)

	return &model.PaymentReceipt{
		ID:           payment.ID,
		Status:       payment.Status,
		StatusDetail: payment.StatusDetail,
		Amount:       payment.TransactionAmount,
		Currency:     currency,
	}, nil
}

func (s *PaymentService) classifyProviderError(err error) error {
	var apiErr *mercadopago.ErrorResponse
	if !errors.As(err, &apiErr) {
		return &ProviderError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Error al procesar el pago",
		}
	}

	pErr := &ProviderError{StatusCode: http.StatusInternalServerError}
	cause := apiErr.FirstCause()
	switch {
	case cause != nil && cause.Code == mercadopago.CauseInvalidParameter:
		pErr.StatusCode = http.StatusBadRequest
		pErr.Message = cause.Description
	case cause != nil && cause.Code == mercadopago.CauseUnauthorized:
		// Never surface the provider's unauthorized detail, it can carry
		// account information.
		pErr.StatusCode = http.StatusUnauthorized
		pErr.Message = "Credenciales de pago inválidas"
	case cause != nil && cause.Description != "":
		pErr.Message = cause.Description
	default:
		pErr.Message = "Error al procesar el pago"
	}

	if !s.cfg.Server.IsProduction() {
		pErr.Cause = apiErr.Cause
	}

	log.Printf("[Payment] provider error (status %d): %v", apiErr.Status, apiErr)
	return pErr
}

func (s *PaymentService) recordPayment(ctx context.Context, req *model.PaymentRequest, payment *mercadopago.Payment, currency string) {
	externalID := fmt.Sprintf("%d", payment.ID)
	record := &model.Payment{
		ExternalID: &externalID,
		PayerEmail: req.Payer.Email,
		Amount:     payment.TransactionAmount,
		Currency:   currency,
		Status:     model.PaymentStatus(payment.Status),
	}
	if req.PlanName != "" {
		record.PlanName = &req.PlanName
	}
	if req.CouponCode != "" {
		record.CouponCode = &req.CouponCode
	}
	if payment.StatusDetail != "" {
		record.StatusDetail = &payment.StatusDetail
	}

	if err := s.store.CreatePayment(ctx, record); err != nil {
		// The provider accepted the charge; a local bookkeeping failure must
		// not fail the checkout.
		log.Printf("[Payment] failed to record payment %d: %v", payment.ID, err)
	}
}
