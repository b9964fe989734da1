package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"fdp_backend/internals/broker"
	"fdp_backend/internals/constants"
	commModel "fdp_backend/internals/features/communications/model"
	commService "fdp_backend/internals/features/communications/service"
	eventModel "fdp_backend/internals/features/events/model"
	payModel "fdp_backend/internals/features/payments/model"
	payService "fdp_backend/internals/features/payments/service"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/metrics"
)

// openPaymentStatuses are the payment states a settlement may still move.
var openPaymentStatuses = []string{
	payModel.PaymentStatusCreated,
	payModel.PaymentStatusPending,
	payModel.PaymentStatusFailed,
}

type ConfirmInput struct {
	OrderID    string
	PaymentRef string
	Signature  string
	Method     string
}

type ConfirmResult struct {
	Payment *payModel.PaymentModel `json:"payment"`
	// Confirmed is true only for the call that moved the registration to completed.
	Confirmed bool `json:"confirmed"`
}

// ConfirmPayment is the client verify path. The signature is checked before
// anything is read or written.
func (p *Pipeline) ConfirmPayment(ctx context.Context, in ConfirmInput) (*ConfirmResult, error) {
	ok, st, err := p.gateway.VerifyPayment(ctx, in.OrderID, in.PaymentRef, in.Signature)
	if err != nil {
		if errors.Is(err, payService.ErrGatewayNotConfigured) {
			return nil, ErrGatewayNotConfigured
		}
		return nil, err
	}
	if !ok {
		metrics.Payments.WithLabelValues("verify_rejected").Inc()
		return nil, ErrVerificationFailed
	}

	pay, err := p.store.GetPaymentByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, ErrPaymentNotFound
	}

	method := in.Method
	var raw []byte
	if st != nil {
		if method == "" {
			method = st.Method
		}
		raw = st.Raw
	}
	changed, err := p.settleSuccess(ctx, pay, in.PaymentRef, method, raw)
	if err != nil {
		return nil, err
	}
	fresh, err := p.store.GetPayment(ctx, pay.PaymentID)
	if err != nil {
		return nil, err
	}
	return &ConfirmResult{Payment: fresh, Confirmed: changed}, nil
}

type WebhookInput struct {
	RawBody   []byte
	Signature string
	Timestamp string
	Headers   map[string]string
}

// HandleWebhook authenticates a gateway callback and applies it. Bad
// signatures are rejected before any write. Deliveries for unknown orders are
// acknowledged and logged as ignored.
func (p *Pipeline) HandleWebhook(ctx context.Context, in WebhookInput) error {
	if !p.gateway.VerifyWebhookSignature(in.RawBody, in.Signature, in.Timestamp) {
		metrics.Webhooks.WithLabelValues("rejected").Inc()
		log.Println("[WEBHOOK] ❌ signature verification failed, rejecting request")
		return ErrInvalidSignature
	}

	gev := &payModel.PaymentGatewayEventModel{
		GatewayEventProvider: p.gateway.ProviderName(),
		GatewayEventPayload:  datatypes.JSON(in.RawBody),
	}
	if len(in.Headers) > 0 {
		if b, err := sonic.Marshal(in.Headers); err == nil {
			gev.GatewayEventHeaders = datatypes.JSON(b)
		}
	}
	if in.Signature != "" {
		sig := in.Signature
		gev.GatewayEventSignature = &sig
	}

	n, perr := p.gateway.ParseWebhook(in.RawBody)
	if perr == nil {
		gev.GatewayEventExternalID = nonEmpty(n.OrderID)
		gev.GatewayEventExternalRef = nonEmpty(n.PaymentRef)
		gev.GatewayEventType = nonEmpty(n.Type)
	}
	if err := p.store.CreateGatewayEvent(ctx, gev); err != nil {
		return err
	}
	if perr != nil {
		msg := perr.Error()
		_ = p.store.FinishGatewayEvent(ctx, gev.GatewayEventID, nil, payModel.GatewayEventStatusFailed, &msg)
		metrics.Webhooks.WithLabelValues("invalid").Inc()
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, perr)
	}

	pay, err := p.store.GetPaymentByOrderID(ctx, n.OrderID)
	if err != nil {
		return err
	}
	if pay == nil {
		msg := "unknown order " + n.OrderID
		metrics.Webhooks.WithLabelValues("ignored").Inc()
		return p.store.FinishGatewayEvent(ctx, gev.GatewayEventID, nil, payModel.GatewayEventStatusIgnored, &msg)
	}

	status := payModel.GatewayEventStatusProcessed
	switch n.Status {
	case payService.StatusSuccess:
		_, err = p.settleSuccess(ctx, pay, n.PaymentRef, n.Method, in.RawBody)
	case payService.StatusPending:
		status = payModel.GatewayEventStatusIgnored
	case payService.StatusRefunded:
		_, err = p.settleRefund(ctx, pay, in.RawBody)
	default:
		_, err = p.settleFailure(ctx, pay, n.PaymentRef, in.RawBody)
	}
	if err != nil {
		msg := err.Error()
		_ = p.store.FinishGatewayEvent(ctx, gev.GatewayEventID, &pay.PaymentID, payModel.GatewayEventStatusFailed, &msg)
		metrics.Webhooks.WithLabelValues("error").Inc()
		return err
	}
	metrics.Webhooks.WithLabelValues(status).Inc()
	return p.store.FinishGatewayEvent(ctx, gev.GatewayEventID, &pay.PaymentID, status, nil)
}

// RefundPayment refunds a successful payment in full, or partially when
// amount is set, and moves the registration to refunded.
func (p *Pipeline) RefundPayment(ctx context.Context, orderID string, amount *helper.Money, reason string) (*payModel.PaymentModel, error) {
	pay, err := p.store.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, ErrPaymentNotFound
	}
	if pay.PaymentStatus != payModel.PaymentStatusSuccess {
		return nil, ErrNotRefundable
	}
	refund := pay.PaymentAmount
	if amount != nil && *amount > 0 {
		if *amount > pay.PaymentAmount {
			return nil, ErrRefundAmount
		}
		refund = *amount
	}
	if strings.TrimSpace(reason) == "" {
		reason = "Refund requested by admin"
	}

	raw, err := p.gateway.InitiateRefund(ctx, orderID, refund, reason)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentUpstream, err)
	}
	moved, err := p.settleRefund(ctx, pay, raw)
	if err != nil {
		return nil, err
	}
	if !moved {
		log.Printf("[PIPELINE] refund for order %s was already applied", orderID)
	}
	return p.store.GetPayment(ctx, pay.PaymentID)
}

// settleSuccess marks the payment successful and moves the registration to
// completed. The confirmation fan-out only runs for the call that performed
// that transition, so a webhook racing the verify call notifies once.
func (p *Pipeline) settleSuccess(ctx context.Context, pay *payModel.PaymentModel, ref, method string, raw []byte) (bool, error) {
	updates := map[string]any{"payment_status": payModel.PaymentStatusSuccess}
	if ref != "" {
		updates["payment_reference"] = ref
	}
	if method != "" {
		updates["payment_method"] = method
	}
	if len(raw) > 0 {
		updates["payment_gateway_response"] = datatypes.JSON(raw)
	}
	moved, err := p.store.TransitionPayment(ctx, pay.PaymentID, openPaymentStatuses, updates)
	if err != nil {
		return false, err
	}
	if !moved {
		// Already success: fall through so a half-applied settlement can
		// still complete the registration. Anything else is terminal.
		cur, err := p.store.GetPayment(ctx, pay.PaymentID)
		if err != nil {
			return false, err
		}
		if cur == nil || cur.PaymentStatus != payModel.PaymentStatusSuccess {
			log.Printf("[PIPELINE] ignoring success for order %s (%s)", pay.PaymentOrderID, statusOf(cur))
			return false, nil
		}
	}

	var changed bool
	switch pay.PaymentEntityType {
	case constants.EntityHostCollege:
		changed, err = p.store.MarkHostCollegePaid(ctx, pay.PaymentEntityID, ref, pay.PaymentAmount)
	case constants.EntityFaculty:
		changed, err = p.store.MarkFacultyPaid(ctx, pay.PaymentEntityID, ref, pay.PaymentAmount)
	}
	if err != nil || !changed {
		return false, err
	}

	metrics.Payments.WithLabelValues(payModel.PaymentStatusSuccess).Inc()
	log.Printf("[PIPELINE] ✅ %s %s completed (order %s)", pay.PaymentEntityType, pay.PaymentEntityID, pay.PaymentOrderID)
	p.publish(ctx, broker.KeyPaymentConfirmed, paymentEvent(pay, ref))
	p.notifyPayment(ctx, pay, ref, true)
	return true, nil
}

// settleFailure never downgrades a payment that already succeeded.
func (p *Pipeline) settleFailure(ctx context.Context, pay *payModel.PaymentModel, ref string, raw []byte) (bool, error) {
	updates := map[string]any{"payment_status": payModel.PaymentStatusFailed}
	if ref != "" {
		updates["payment_reference"] = ref
	}
	if len(raw) > 0 {
		updates["payment_gateway_response"] = datatypes.JSON(raw)
	}
	moved, err := p.store.TransitionPayment(ctx, pay.PaymentID, openPaymentStatuses, updates)
	if err != nil {
		return false, err
	}
	if !moved {
		log.Printf("[PIPELINE] ignoring failure for settled order %s", pay.PaymentOrderID)
		return false, nil
	}

	var changed bool
	switch pay.PaymentEntityType {
	case constants.EntityHostCollege:
		changed, err = p.store.MarkHostCollegeFailed(ctx, pay.PaymentEntityID, ref)
	case constants.EntityFaculty:
		changed, err = p.store.MarkFacultyFailed(ctx, pay.PaymentEntityID, ref)
	}
	if err != nil || !changed {
		return false, err
	}

	metrics.Payments.WithLabelValues(payModel.PaymentStatusFailed).Inc()
	p.publish(ctx, broker.KeyPaymentFailed, paymentEvent(pay, ref))
	p.notifyPayment(ctx, pay, ref, false)
	return true, nil
}

// settleRefund only moves a successful payment; refunded is terminal.
func (p *Pipeline) settleRefund(ctx context.Context, pay *payModel.PaymentModel, raw []byte) (bool, error) {
	updates := map[string]any{"payment_status": payModel.PaymentStatusRefunded}
	if len(raw) > 0 {
		updates["payment_gateway_response"] = datatypes.JSON(raw)
	}
	moved, err := p.store.TransitionPayment(ctx, pay.PaymentID,
		[]string{payModel.PaymentStatusSuccess}, updates)
	if err != nil {
		return false, err
	}
	if !moved {
		log.Printf("[PIPELINE] ignoring refund for order %s: payment is not successful", pay.PaymentOrderID)
		return false, nil
	}

	var changed bool
	switch pay.PaymentEntityType {
	case constants.EntityHostCollege:
		changed, err = p.store.MarkHostCollegeRefunded(ctx, pay.PaymentEntityID)
	case constants.EntityFaculty:
		changed, err = p.store.MarkFacultyRefunded(ctx, pay.PaymentEntityID)
	}
	if err != nil || !changed {
		return false, err
	}
	metrics.Payments.WithLabelValues(payModel.PaymentStatusRefunded).Inc()
	p.publish(ctx, broker.KeyPaymentRefunded, paymentEvent(pay, ""))
	return true, nil
}

// notifyPayment sends the confirmation or failure notice for a payment.
func (p *Pipeline) notifyPayment(ctx context.Context, pay *payModel.PaymentModel, ref string, success bool) {
	ev, err := p.store.GetEvent(ctx, pay.PaymentEventID)
	if err != nil || ev == nil {
		log.Printf("[PIPELINE] skip notification for %s: event %s unavailable: %v", pay.PaymentOrderID, pay.PaymentEventID, err)
		return
	}
	c, ok := p.contactFor(ctx, pay.PaymentEntityType, pay.PaymentEntityID)
	if !ok {
		return
	}

	n := paymentNotice(ev, c, ref, pay.PaymentAmount)
	if success {
		p.sendBoth(ctx, ev, c, commModel.MessageTypeConfirmation,
			commService.ConfirmationEmail(c.Email, n), commService.ConfirmationWhatsApp(c.Whatsapp, n))
		return
	}
	p.sendBoth(ctx, ev, c, commModel.MessageTypePaymentFailed,
		commService.PaymentFailedEmail(c.Email, n), commService.PaymentFailedWhatsApp(c.Whatsapp, n))
}

func paymentNotice(ev *eventModel.EventModel, c contact, ref string, amount helper.Money) commService.Notice {
	return commService.Notice{
		Name:              c.Name,
		EventTitle:        ev.EventTitle,
		PaymentID:         ref,
		Amount:            amount.String(),
		JoiningLink:       deref(ev.EventJoiningLink),
		WhatsAppGroupLink: deref(ev.EventWhatsappGroupLink),
		HostCollege:       c.HostCollege,
	}
}

func (p *Pipeline) contactFor(ctx context.Context, entityType string, id uuid.UUID) (contact, bool) {
	switch entityType {
	case constants.EntityHostCollege:
		h, err := p.store.GetHostCollege(ctx, id)
		if err != nil || h == nil {
			log.Printf("[PIPELINE] host college %s unavailable: %v", id, err)
			return contact{}, false
		}
		return hostContact(h), true
	case constants.EntityFaculty:
		f, err := p.store.GetFaculty(ctx, id)
		if err != nil || f == nil {
			log.Printf("[PIPELINE] faculty %s unavailable: %v", id, err)
			return contact{}, false
		}
		return facultyContact(f), true
	}
	return contact{}, false
}

func paymentEvent(pay *payModel.PaymentModel, ref string) map[string]any {
	return map[string]any{
		"orderId":    pay.PaymentOrderID,
		"paymentRef": ref,
		"entityType": pay.PaymentEntityType,
		"entityId":   pay.PaymentEntityID,
		"eventId":    pay.PaymentEventID,
		"amount":     pay.PaymentAmount,
	}
}

func statusOf(pay *payModel.PaymentModel) string {
	if pay == nil {
		return "missing"
	}
	return pay.PaymentStatus
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
