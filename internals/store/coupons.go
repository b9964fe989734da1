package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	couponModel "fdp_backend/internals/features/coupons/model"
)

func (s *Store) CreateCoupon(ctx context.Context, m *couponModel.CouponModel) error {
	m.CouponCode = strings.ToUpper(strings.TrimSpace(m.CouponCode))
	return s.db(ctx).Create(m).Error
}

// GetCouponByCode only sees active coupons; codes are case-insensitive.
func (s *Store) GetCouponByCode(ctx context.Context, code string) (*couponModel.CouponModel, error) {
	var m couponModel.CouponModel
	ok, err := first(s.db(ctx).Where("coupon_code = ? AND coupon_is_active = ?",
		strings.ToUpper(strings.TrimSpace(code)), true), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListCoupons(ctx context.Context) ([]couponModel.CouponModel, error) {
	var rows []couponModel.CouponModel
	err := s.db(ctx).Order("coupon_created_at DESC").Find(&rows).Error
	return rows, err
}

func (s *Store) UpdateCoupon(ctx context.Context, id uuid.UUID, updates map[string]any) (*couponModel.CouponModel, error) {
	if len(updates) > 0 {
		updates["coupon_updated_at"] = time.Now()
		if err := s.db(ctx).Model(&couponModel.CouponModel{}).
			Where("coupon_id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	var m couponModel.CouponModel
	ok, err := first(s.db(ctx).Where("coupon_id = ?", id), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

// RedeemCoupon bumps used_count unless the cap is already reached.
func (s *Store) RedeemCoupon(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db(ctx).Model(&couponModel.CouponModel{}).
		Where("coupon_id = ? AND (coupon_max_uses IS NULL OR coupon_used_count < coupon_max_uses)", id).
		Updates(map[string]any{
			"coupon_used_count": gorm.Expr("coupon_used_count + 1"),
			"coupon_updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// ReleaseCoupon gives back a use taken by RedeemCoupon.
func (s *Store) ReleaseCoupon(ctx context.Context, id uuid.UUID) error {
	return s.db(ctx).Model(&couponModel.CouponModel{}).
		Where("coupon_id = ? AND coupon_used_count > 0", id).
		Updates(map[string]any{
			"coupon_used_count": gorm.Expr("coupon_used_count - 1"),
			"coupon_updated_at": time.Now(),
		}).Error
}
