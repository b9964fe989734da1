package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "fdp_backend/internals/helpers"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type CouponModel struct {
	CouponID      uuid.UUID  `gorm:"column:coupon_id;type:uuid;primaryKey" json:"coupon_id"`
	CouponCode    string     `gorm:"column:coupon_code;type:varchar(50);not null;uniqueIndex" json:"coupon_code"`
	CouponEventID *uuid.UUID `gorm:"column:coupon_event_id;type:uuid;index" json:"coupon_event_id,omitempty"`

	CouponDiscountType  string       `gorm:"column:coupon_discount_type;type:varchar(20);not null" json:"coupon_discount_type"`
	CouponDiscountValue helper.Money `gorm:"column:coupon_discount_value;type:numeric(10,2);not null" json:"coupon_discount_value"`

	CouponMaxUses   *int `gorm:"column:coupon_max_uses" json:"coupon_max_uses,omitempty"`
	CouponUsedCount int  `gorm:"column:coupon_used_count;not null;default:0" json:"coupon_used_count"`

	CouponValidFrom  *time.Time `gorm:"column:coupon_valid_from" json:"coupon_valid_from,omitempty"`
	CouponValidUntil *time.Time `gorm:"column:coupon_valid_until" json:"coupon_valid_until,omitempty"`
	CouponIsActive   bool       `gorm:"column:coupon_is_active;not null;default:true" json:"coupon_is_active"`

	CouponCreatedAt time.Time `gorm:"column:coupon_created_at;autoCreateTime" json:"coupon_created_at"`
	CouponUpdatedAt time.Time `gorm:"column:coupon_updated_at;autoUpdateTime" json:"coupon_updated_at"`
}

func (CouponModel) TableName() string {
	return "coupons"
}

func (m *CouponModel) BeforeCreate(tx *gorm.DB) error {
	if m.CouponID == uuid.Nil {
		m.CouponID = uuid.New()
	}
	return nil
}

// Apply returns the discounted amount, never below zero.
func (m *CouponModel) Apply(amount helper.Money) helper.Money {
	var off helper.Money
	switch m.CouponDiscountType {
	case DiscountPercentage:
		off = helper.Money(int64(amount) * int64(m.CouponDiscountValue) / 10000)
	case DiscountFixed:
		off = m.CouponDiscountValue
	}
	if off > amount {
		return 0
	}
	return amount - off
}
