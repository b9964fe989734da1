package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fdp_backend/internals/features/coupons/model"
	eventModel "fdp_backend/internals/features/events/model"
	helper "fdp_backend/internals/helpers"
)

var (
	ErrCouponNotFound  = fiber.NewError(fiber.StatusNotFound, "Invalid coupon code")
	ErrCouponExhausted = fiber.NewError(fiber.StatusBadRequest, "Coupon usage limit exceeded")
	ErrCouponExpired   = fiber.NewError(fiber.StatusBadRequest, "Coupon has expired")
	ErrCouponNotYet    = fiber.NewError(fiber.StatusBadRequest, "Coupon is not active yet")
	ErrCouponOtherFDP  = fiber.NewError(fiber.StatusBadRequest, "Coupon is not valid for this FDP")
)

type CouponStore interface {
	GetCouponByCode(ctx context.Context, code string) (*model.CouponModel, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error)
	RedeemCoupon(ctx context.Context, id uuid.UUID) (bool, error)
	ReleaseCoupon(ctx context.Context, id uuid.UUID) error
}

// Quote is the discounted price of one registration.
type Quote struct {
	EntityType     string       `json:"entityType"`
	OriginalAmount helper.Money `json:"originalAmount"`
	Discount       helper.Money `json:"discount"`
	FinalAmount    helper.Money `json:"finalAmount"`
}

type Validation struct {
	Coupon *model.CouponModel `json:"coupon"`
	Quote  *Quote             `json:"quote,omitempty"`
}

type Service struct {
	store CouponStore
}

func New(st CouponStore) *Service {
	return &Service{store: st}
}

// Check applies the usage cap and validity window to an active coupon.
// The cap is checked before the window.
func Check(c *model.CouponModel, now time.Time) error {
	if c.CouponMaxUses != nil && c.CouponUsedCount >= *c.CouponMaxUses {
		return ErrCouponExhausted
	}
	if c.CouponValidUntil != nil && now.After(*c.CouponValidUntil) {
		return ErrCouponExpired
	}
	if c.CouponValidFrom != nil && now.Before(*c.CouponValidFrom) {
		return ErrCouponNotYet
	}
	return nil
}

// Validate looks the code up and checks it. With an event id it also quotes
// the discounted fee for entityType.
func (s *Service) Validate(ctx context.Context, code string, eventID *uuid.UUID, entityType string, now time.Time) (*Validation, error) {
	c, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	if err := Check(c, now); err != nil {
		return nil, err
	}
	out := &Validation{Coupon: c}
	if eventID == nil {
		return out, nil
	}
	if c.CouponEventID != nil && *c.CouponEventID != *eventID {
		return nil, ErrCouponOtherFDP
	}
	ev, err := s.store.GetEvent(ctx, *eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return out, nil
	}
	fee := ev.FeeFor(entityType)
	final := c.Apply(fee)
	out.Quote = &Quote{
		EntityType:     entityType,
		OriginalAmount: fee,
		Discount:       fee - final,
		FinalAmount:    final,
	}
	return out, nil
}

// Redeem validates the code for an event and consumes one use. It returns
// the discounted fee.
func (s *Service) Redeem(ctx context.Context, code string, ev *eventModel.EventModel, entityType string, now time.Time) (helper.Money, *model.CouponModel, error) {
	v, err := s.Validate(ctx, code, &ev.EventID, entityType, now)
	if err != nil {
		return 0, nil, err
	}
	ok, err := s.store.RedeemCoupon(ctx, v.Coupon.CouponID)
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return 0, nil, ErrCouponExhausted
	}
	return v.Coupon.Apply(ev.FeeFor(entityType)), v.Coupon, nil
}

// Release returns a redeemed use, for registrations that never got an order.
func (s *Service) Release(ctx context.Context, c *model.CouponModel) error {
	return s.store.ReleaseCoupon(ctx, c.CouponID)
}
