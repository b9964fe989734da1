package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"fdp_backend/internals/features/coupons/model"
	helper "fdp_backend/internals/helpers"
)

// CreateCouponRequest takes the discount as entered: 10 means 10% for a
// percentage coupon and 10.00 rupees for a fixed one.
type CreateCouponRequest struct {
	Code          string       `json:"coupon_code" validate:"required,min=3,max=50"`
	EventID       *string      `json:"coupon_event_id" validate:"omitempty,uuid"`
	DiscountType  string       `json:"coupon_discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue helper.Money `json:"coupon_discount_value" validate:"gt=0"`
	MaxUses       *int         `json:"coupon_max_uses" validate:"omitempty,gt=0"`
	ValidFrom     *time.Time   `json:"coupon_valid_from"`
	ValidUntil    *time.Time   `json:"coupon_valid_until"`
}

func (r *CreateCouponRequest) ToModel() *model.CouponModel {
	m := &model.CouponModel{
		CouponCode:          strings.ToUpper(strings.TrimSpace(r.Code)),
		CouponDiscountType:  r.DiscountType,
		CouponDiscountValue: r.DiscountValue,
		CouponMaxUses:       r.MaxUses,
		CouponValidFrom:     r.ValidFrom,
		CouponValidUntil:    r.ValidUntil,
		CouponIsActive:      true,
	}
	if id, err := helper.ParseUUIDPtr(r.EventID); err == nil {
		m.CouponEventID = id
	}
	return m
}

type UpdateCouponRequest struct {
	DiscountValue *helper.Money `json:"coupon_discount_value" validate:"omitempty,gt=0"`
	MaxUses       *int          `json:"coupon_max_uses" validate:"omitempty,gt=0"`
	ValidFrom     *time.Time    `json:"coupon_valid_from"`
	ValidUntil    *time.Time    `json:"coupon_valid_until"`
	IsActive      *bool         `json:"coupon_is_active"`
}

func (r *UpdateCouponRequest) ToUpdates() map[string]any {
	u := map[string]any{}
	if r.DiscountValue != nil {
		u["coupon_discount_value"] = *r.DiscountValue
	}
	if r.MaxUses != nil {
		u["coupon_max_uses"] = *r.MaxUses
	}
	if r.ValidFrom != nil {
		u["coupon_valid_from"] = *r.ValidFrom
	}
	if r.ValidUntil != nil {
		u["coupon_valid_until"] = *r.ValidUntil
	}
	if r.IsActive != nil {
		u["coupon_is_active"] = *r.IsActive
	}
	return u
}

type ValidateCouponRequest struct {
	Code       string  `json:"coupon_code" validate:"required"`
	EventID    *string `json:"fdp_id" validate:"omitempty,uuid"`
	EntityType string  `json:"entity_type" validate:"omitempty,oneof=host_college faculty"`
}

func (r *ValidateCouponRequest) EventUUID() *uuid.UUID {
	id, _ := helper.ParseUUIDPtr(r.EventID)
	return id
}
