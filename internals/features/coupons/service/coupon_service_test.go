package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"fdp_backend/internals/constants"
	"fdp_backend/internals/databases/testdb"
	"fdp_backend/internals/features/coupons/model"
	eventModel "fdp_backend/internals/features/events/model"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/store"
)

var now = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestCheckRejectsIndependently(t *testing.T) {
	exhausted := &model.CouponModel{CouponMaxUses: intPtr(3), CouponUsedCount: 3}
	if err := Check(exhausted, now); !errors.Is(err, ErrCouponExhausted) {
		t.Errorf("exhausted: %v", err)
	}

	expired := &model.CouponModel{CouponValidUntil: timePtr(now.Add(-time.Hour))}
	if err := Check(expired, now); !errors.Is(err, ErrCouponExpired) {
		t.Errorf("expired: %v", err)
	}

	early := &model.CouponModel{CouponValidFrom: timePtr(now.Add(time.Hour))}
	if err := Check(early, now); !errors.Is(err, ErrCouponNotYet) {
		t.Errorf("not yet: %v", err)
	}

	ok := &model.CouponModel{CouponMaxUses: intPtr(3), CouponUsedCount: 2, CouponValidUntil: timePtr(now.Add(time.Hour))}
	if err := Check(ok, now); err != nil {
		t.Errorf("valid coupon rejected: %v", err)
	}
}

func TestApplyDiscount(t *testing.T) {
	pct := &model.CouponModel{CouponDiscountType: model.DiscountPercentage, CouponDiscountValue: 2000}
	if got := pct.Apply(150000); got != 120000 {
		t.Errorf("20%% of 1500.00 -> %s", got)
	}
	fixed := &model.CouponModel{CouponDiscountType: model.DiscountFixed, CouponDiscountValue: 200000}
	if got := fixed.Apply(150000); got != 0 {
		t.Errorf("fixed discount above fee -> %s", got)
	}
}

func TestValidateAndRedeem(t *testing.T) {
	ctx := context.Background()
	st := store.New(testdb.Open(t))
	ev := &eventModel.EventModel{
		EventTitle:      "Cloud Native",
		EventCategory:   "cs",
		EventStartDate:  now.Add(72 * time.Hour),
		EventEndDate:    now.Add(96 * time.Hour),
		EventHostFee:    helper.Money(500000),
		EventFacultyFee: helper.Money(150000),
	}
	if err := st.CreateEvent(ctx, ev); err != nil {
		t.Fatal(err)
	}
	c := &model.CouponModel{
		CouponCode:          "early10",
		CouponDiscountType:  model.DiscountPercentage,
		CouponDiscountValue: 1000,
		CouponMaxUses:       intPtr(1),
		CouponIsActive:      true,
	}
	if err := st.CreateCoupon(ctx, c); err != nil {
		t.Fatal(err)
	}
	svc := New(st)

	if _, err := svc.Validate(ctx, "nope", nil, "", now); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("unknown code: %v", err)
	}

	v, err := svc.Validate(ctx, "EARLY10", &ev.EventID, constants.EntityFaculty, now)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if v.Quote == nil || v.Quote.FinalAmount.String() != "1350.00" || v.Quote.Discount.String() != "150.00" {
		t.Fatalf("quote = %+v", v.Quote)
	}

	amount, _, err := svc.Redeem(ctx, "early10", ev, constants.EntityFaculty, now)
	if err != nil || amount.String() != "1350.00" {
		t.Fatalf("redeem = %s, %v", amount, err)
	}
	if _, _, err := svc.Redeem(ctx, "early10", ev, constants.EntityFaculty, now); !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("second redeem: %v", err)
	}

	other := uuid.New()
	if _, err := svc.Validate(ctx, "early10", &other, constants.EntityFaculty, now); err == nil {
		t.Fatal("expected rejection after the cap is reached")
	}
}
