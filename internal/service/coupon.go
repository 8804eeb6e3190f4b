package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/model"
)

var (
	ErrMissingCouponParams = errors.New("Faltan parámetros: código y precio original son requeridos")
	ErrCouponNotFound      = errors.New("Código de cupón inválido")
)

// CouponNotApplicableError is returned for a known coupon that fails one or
// more applicability rules. Reasons holds every violated rule in evaluation
// order; the first one is the primary display message.
type CouponNotApplicableError struct {
	Reasons []string
}

func (e *CouponNotApplicableError) Error() string {
	if len(e.Reasons) == 0 {
		return "El cupón no es aplicable"
	}
	return e.Reasons[0]
}

// CouponStore is the storage behind coupon lookup and redemption (implemented
// by repository.Repository).
type CouponStore interface {
	GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error)
	RedeemCoupon(ctx context.Context, couponID uuid.UUID, payerEmail string) error
}

type CouponService struct {
	store CouponStore
	now   func() time.Time
}

func NewCouponService(store CouponStore) *CouponService {
	return &CouponService{
		store: store,
		now:   time.Now,
	}
}

// Resolve looks up a coupon by code, checks every applicability rule and
// computes the discounted price. It is pure over the stored coupon row and
// the clock: no usage is consumed here.
func (s *CouponService) Resolve(ctx context.Context, code string, originalPrice float64, planName string) (*model.CouponResult, error) {
	if strings.TrimSpace(code) == "" || originalPrice <= 0 {
		return nil, ErrMissingCouponParams
	}

	coupon, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	// Collect all violations, in a fixed order.
	var reasons []string
	if !coupon.IsActive {
		reasons = append(reasons, "El cupón no está activo")
	}
	if coupon.IsExpired(s.now()) {
		reasons = append(reasons, "El cupón ha expirado")
	}
	if coupon.UsageExhausted() {
		reasons = append(reasons, "El cupón alcanzó su límite de usos")
	}
	if !coupon.MeetsMinimum(originalPrice) {
		reasons = append(reasons, fmt.Sprintf("La compra debe ser de al menos $%.0f para usar este cupón", coupon.MinimumAmount))
	}
	if !coupon.AppliesToPlan(planName) {
		reasons = append(reasons, "El cupón no es válido para el plan seleccionado")
	}
	if len(reasons) > 0 {
		return nil, &CouponNotApplicableError{Reasons: reasons}
	}

	pricing := applyDiscount(coupon, originalPrice)

	description := ""
	if coupon.Description != nil {
		description = *coupon.Description
	}

	remaining := "unlimited"
	if coupon.MaxUses != nil {
		remaining = strconv.Itoa(*coupon.MaxUses - coupon.UsedCount)
	}

	return &model.CouponResult{
		Coupon: model.CouponInfo{
			Code:          coupon.Code,
			DiscountType:  coupon.DiscountType,
			DiscountValue: coupon.DiscountValue,
			Description:   description,
			ExpiresAt:     coupon.ExpiresAt,
		},
		Pricing:  pricing,
		Metadata: model.CouponMetadata{RemainingUses: remaining},
	}, nil
}

// applyDiscount computes whole-unit pricing. The discount is capped at one
// unit below the original price so the final price never reaches zero.
func applyDiscount(coupon *model.Coupon, originalPrice float64) model.Pricing {
	var discount float64
	switch coupon.DiscountType {
	case model.DiscountTypeFixed:
		discount = coupon.DiscountValue
	default: // percentage
		discount = originalPrice * coupon.DiscountValue / 100
	}
	discount = math.Round(discount)
	if discount > originalPrice-1 {
		discount = originalPrice - 1
	}
	if discount < 0 {
		discount = 0
	}

	return model.Pricing{
		OriginalPrice:      originalPrice,
		DiscountAmount:     discount,
		FinalPrice:         originalPrice - discount,
		DiscountPercentage: int(math.Round(discount / originalPrice * 100)),
	}
}

// Redeem consumes one use of the coupon. Called from the webhook fulfillment
// path when a payment that carried the coupon is approved.
func (s *CouponService) Redeem(ctx context.Context, code, payerEmail string) error {
	coupon, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	return s.store.RedeemCoupon(ctx, coupon.ID, payerEmail)
}
