package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"fdp_backend/internals/broker"
	"fdp_backend/internals/constants"
	commModel "fdp_backend/internals/features/communications/model"
	commService "fdp_backend/internals/features/communications/service"
	couponModel "fdp_backend/internals/features/coupons/model"
	eventModel "fdp_backend/internals/features/events/model"
	payService "fdp_backend/internals/features/payments/service"
	regModel "fdp_backend/internals/features/registrations/model"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/metrics"
)

type HostCollegeRegistration struct {
	HostCollege  *regModel.HostCollegeModel `json:"hostCollege"`
	PaymentOrder *payService.OrderResult    `json:"paymentOrder"`
}

type FacultyRegistration struct {
	Registration *regModel.FacultyRegistrationModel `json:"registration"`
	PaymentOrder *payService.OrderResult            `json:"paymentOrder"`
}

// OpenEvent returns the event if it exists and still takes registrations.
func (p *Pipeline) OpenEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	ev, err := p.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ev.AcceptsRegistrations() {
		return nil, ErrEventClosed
	}
	return ev, nil
}

// RegisterHostCollege persists a pending host college and opens a payment
// order for the event's host fee. If the gateway fails the row stays pending
// without a payment link. A zero fee completes the registration directly.
func (p *Pipeline) RegisterHostCollege(ctx context.Context, m *regModel.HostCollegeModel) (*HostCollegeRegistration, error) {
	ev, err := p.OpenEvent(ctx, m.HostCollegeEventID)
	if err != nil {
		return nil, err
	}

	m.HostCollegePaymentStatus = regModel.PaymentStatusPending
	if err := p.store.CreateHostCollege(ctx, m); err != nil {
		return nil, err
	}
	metrics.Registrations.WithLabelValues(constants.EntityHostCollege).Inc()
	p.publish(ctx, broker.KeyRegistrationCreated, registrationEvent(constants.EntityHostCollege, m.HostCollegeID, ev.EventID))

	if ev.EventHostFee == 0 {
		if err := p.completeWithoutPayment(ctx, ev, constants.EntityHostCollege, m.HostCollegeID, freeReference(nil)); err != nil {
			return nil, err
		}
		hc, err := p.store.GetHostCollege(ctx, m.HostCollegeID)
		if err != nil {
			return nil, err
		}
		return &HostCollegeRegistration{HostCollege: hc}, nil
	}

	order, err := p.openOrder(ctx, ev, constants.EntityHostCollege, m.HostCollegeID, ev.EventHostFee, payService.Customer{
		ID:    m.HostCollegeID.String(),
		Email: m.HostCollegeEmail,
		Phone: m.HostCollegePhone,
		Name:  m.HostCollegeContactPerson,
	})
	if err != nil {
		return nil, err
	}
	return &HostCollegeRegistration{HostCollege: m, PaymentOrder: order}, nil
}

// RegisterFaculty is the faculty twin of RegisterHostCollege. Capacity counts
// pending and completed registrations. A coupon code, when given, is redeemed
// before the order is opened and released again if no order comes of it.
// A coupon covering the whole fee completes the registration without an order.
func (p *Pipeline) RegisterFaculty(ctx context.Context, m *regModel.FacultyRegistrationModel, couponCode string) (*FacultyRegistration, error) {
	ev, err := p.OpenEvent(ctx, m.FacultyEventID)
	if err != nil {
		return nil, err
	}
	if ev.EventMaxParticipants != nil {
		n, err := p.store.CountActiveFaculty(ctx, ev.EventID)
		if err != nil {
			return nil, err
		}
		if n >= int64(*ev.EventMaxParticipants) {
			return nil, ErrEventFull
		}
	}
	if m.FacultyHostCollegeID != nil {
		hc, err := p.store.GetHostCollege(ctx, *m.FacultyHostCollegeID)
		if err != nil {
			return nil, err
		}
		if hc == nil || hc.HostCollegeEventID != ev.EventID {
			return nil, ErrHostCollegeNotFound
		}
		m.FacultyRegistrationType = regModel.RegistrationTypeViaHost
	}

	amount := ev.EventFacultyFee
	var coupon *couponModel.CouponModel
	if couponCode != "" {
		amount, coupon, err = p.coupons.Redeem(ctx, couponCode, ev, constants.EntityFaculty, p.now())
		if err != nil {
			return nil, err
		}
	}

	m.FacultyPaymentStatus = regModel.PaymentStatusPending
	if err := p.store.CreateFaculty(ctx, m); err != nil {
		p.releaseCoupon(ctx, coupon)
		return nil, err
	}
	metrics.Registrations.WithLabelValues(constants.EntityFaculty).Inc()
	p.publish(ctx, broker.KeyRegistrationCreated, registrationEvent(constants.EntityFaculty, m.FacultyID, ev.EventID))

	if amount == 0 {
		if err := p.completeWithoutPayment(ctx, ev, constants.EntityFaculty, m.FacultyID, freeReference(coupon)); err != nil {
			return nil, err
		}
		f, err := p.store.GetFaculty(ctx, m.FacultyID)
		if err != nil {
			return nil, err
		}
		return &FacultyRegistration{Registration: f}, nil
	}

	order, err := p.openOrder(ctx, ev, constants.EntityFaculty, m.FacultyID, amount, payService.Customer{
		ID:    m.FacultyID.String(),
		Email: m.FacultyEmail,
		Phone: m.FacultyPhone,
		Name:  m.FacultyName,
	})
	if err != nil {
		p.releaseCoupon(ctx, coupon)
		return nil, err
	}
	return &FacultyRegistration{Registration: m, PaymentOrder: order}, nil
}

func (p *Pipeline) openOrder(ctx context.Context, ev *eventModel.EventModel, entityType string, entityID uuid.UUID, amount helper.Money, cust payService.Customer) (*payService.OrderResult, error) {
	order, err := p.gateway.CreateOrder(ctx, payService.OrderInput{
		Amount:     amount,
		EntityType: entityType,
		EntityID:   entityID,
		EventID:    ev.EventID,
		Customer:   cust,
	})
	switch {
	case err == nil:
		return order, nil
	case errors.Is(err, payService.ErrGatewayNotConfigured):
		log.Printf("[PIPELINE] ❌ %s %s registered without order: gateway not configured", entityType, entityID)
		return nil, fmt.Errorf("%w: %v", ErrGatewayNotConfigured, err)
	default:
		log.Printf("[PIPELINE] ❌ %s %s registered without order: %v", entityType, entityID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentUpstream, err)
	}
}

// completeWithoutPayment settles a registration that owes nothing and sends
// the usual confirmation.
func (p *Pipeline) completeWithoutPayment(ctx context.Context, ev *eventModel.EventModel, entityType string, id uuid.UUID, ref string) error {
	var changed bool
	var err error
	switch entityType {
	case constants.EntityHostCollege:
		changed, err = p.store.MarkHostCollegePaid(ctx, id, ref, 0)
	case constants.EntityFaculty:
		changed, err = p.store.MarkFacultyPaid(ctx, id, ref, 0)
	}
	if err != nil || !changed {
		return err
	}
	log.Printf("[PIPELINE] ✅ %s %s completed without payment (%s)", entityType, id, ref)
	p.publish(ctx, broker.KeyPaymentConfirmed, map[string]any{
		"paymentRef": ref,
		"entityType": entityType,
		"entityId":   id,
		"eventId":    ev.EventID,
		"amount":     helper.Money(0),
	})

	c, ok := p.contactFor(ctx, entityType, id)
	if !ok {
		return nil
	}
	n := paymentNotice(ev, c, ref, 0)
	p.sendBoth(ctx, ev, c, commModel.MessageTypeConfirmation,
		commService.ConfirmationEmail(c.Email, n), commService.ConfirmationWhatsApp(c.Whatsapp, n))
	return nil
}

func (p *Pipeline) releaseCoupon(ctx context.Context, c *couponModel.CouponModel) {
	if c == nil {
		return
	}
	if err := p.coupons.Release(ctx, c); err != nil {
		log.Printf("[COUPON] ⚠️ could not release %s: %v", c.CouponCode, err)
	}
}

func freeReference(c *couponModel.CouponModel) string {
	if c == nil {
		return "FREE"
	}
	return "COUPON_" + c.CouponCode
}

func registrationEvent(entityType string, entityID, eventID uuid.UUID) map[string]any {
	return map[string]any{"entityType": entityType, "entityId": entityID, "eventId": eventID}
}
