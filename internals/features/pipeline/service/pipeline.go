// Package service is the registration pipeline: it takes a registration
// through payment, confirmation fan-out, feedback and certificate issuance.
package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fdp_backend/internals/broker"
	"fdp_backend/internals/configs"
	"fdp_backend/internals/constants"
	certService "fdp_backend/internals/features/certificates/service"
	commService "fdp_backend/internals/features/communications/service"
	couponService "fdp_backend/internals/features/coupons/service"
	eventModel "fdp_backend/internals/features/events/model"
	payService "fdp_backend/internals/features/payments/service"
	regModel "fdp_backend/internals/features/registrations/model"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/store"
)

var (
	ErrEventNotFound        = fiber.NewError(fiber.StatusNotFound, "FDP event not found")
	ErrHostCollegeNotFound  = fiber.NewError(fiber.StatusNotFound, "Host college not found")
	ErrFacultyNotFound      = fiber.NewError(fiber.StatusNotFound, "Faculty registration not found")
	ErrPaymentNotFound      = fiber.NewError(fiber.StatusNotFound, "Payment not found")
	ErrEventClosed          = fiber.NewError(fiber.StatusConflict, "FDP event is not accepting registrations")
	ErrEventFull            = fiber.NewError(fiber.StatusConflict, "FDP event is full")
	ErrVerificationFailed   = fiber.NewError(fiber.StatusBadRequest, "Payment verification failed")
	ErrInvalidSignature     = fiber.NewError(fiber.StatusUnauthorized, "Invalid webhook signature")
	ErrInvalidWebhook       = fiber.NewError(fiber.StatusBadRequest, "Invalid webhook payload")
	ErrNotRefundable        = fiber.NewError(fiber.StatusConflict, "Only successful payments can be refunded")
	ErrRefundAmount         = fiber.NewError(fiber.StatusUnprocessableEntity, "Refund amount exceeds the amount paid")
	ErrNotEligible          = fiber.NewError(fiber.StatusConflict, "Registration is not eligible for a certificate")
	ErrPaymentUpstream      = fiber.NewError(fiber.StatusBadGateway, "Payment gateway request failed")
	ErrGatewayNotConfigured = fiber.NewError(fiber.StatusServiceUnavailable, "Payment gateway is not configured")
	ErrCertificateRender    = fiber.NewError(fiber.StatusBadGateway, "Failed to generate certificate")
)

// PaymentGateway is what the pipeline needs from payments.Gateway.
type PaymentGateway interface {
	ProviderName() string
	CreateOrder(ctx context.Context, in payService.OrderInput) (*payService.OrderResult, error)
	VerifyPayment(ctx context.Context, orderID, paymentRef, signature string) (bool, *payService.ProviderPaymentStatus, error)
	VerifyWebhookSignature(rawBody []byte, signature, timestamp string) bool
	ParseWebhook(rawBody []byte) (*payService.WebhookNotification, error)
	InitiateRefund(ctx context.Context, orderID string, amount helper.Money, reason string) ([]byte, error)
}

type Pipeline struct {
	store       *store.Store
	gateway     PaymentGateway
	notify      *commService.Dispatcher
	renderer    *certService.Renderer
	coupons     *couponService.Service
	publisher   broker.Publisher
	concurrency int
	now         func() time.Time
}

func New(
	st *store.Store,
	gw PaymentGateway,
	notify *commService.Dispatcher,
	renderer *certService.Renderer,
	publisher broker.Publisher,
	bulk configs.Bulk,
) *Pipeline {
	if publisher == nil {
		publisher = broker.NoopPublisher{}
	}
	return &Pipeline{
		store:       st,
		gateway:     gw,
		notify:      notify,
		renderer:    renderer,
		coupons:     couponService.New(st),
		publisher:   publisher,
		concurrency: max(bulk.Concurrency, 1),
		now:         time.Now,
	}
}

func (p *Pipeline) Store() *store.Store { return p.store }

func (p *Pipeline) Coupons() *couponService.Service { return p.coupons }

func (p *Pipeline) loadEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	ev, err := p.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	return ev, nil
}

// publish is best effort; a broker outage never fails the request.
func (p *Pipeline) publish(ctx context.Context, key string, data any) {
	if err := p.publisher.Publish(ctx, key, data); err != nil {
		log.Printf("[BROKER] publish %s failed: %v", key, err)
	}
}

// whatsappNumber falls back to the phone number when no WhatsApp number was given.
func whatsappNumber(whatsapp *string, phone string) string {
	if whatsapp != nil && strings.TrimSpace(*whatsapp) != "" {
		return strings.TrimSpace(*whatsapp)
	}
	return strings.TrimSpace(phone)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// contact is the notification view of either registrant kind.
type contact struct {
	ID          uuid.UUID
	Type        string
	Name        string
	Email       string
	Whatsapp    string
	HostCollege bool
}

func hostContact(h *regModel.HostCollegeModel) contact {
	return contact{
		ID:          h.HostCollegeID,
		Type:        constants.EntityHostCollege,
		Name:        h.HostCollegeContactPerson,
		Email:       h.HostCollegeEmail,
		Whatsapp:    whatsappNumber(h.HostCollegeWhatsapp, h.HostCollegePhone),
		HostCollege: true,
	}
}

func facultyContact(f *regModel.FacultyRegistrationModel) contact {
	return contact{
		ID:       f.FacultyID,
		Type:     constants.EntityFaculty,
		Name:     f.FacultyName,
		Email:    f.FacultyEmail,
		Whatsapp: whatsappNumber(f.FacultyWhatsapp, f.FacultyPhone),
	}
}

func (c contact) recipient() commService.Recipient {
	id := c.ID
	return commService.Recipient{ID: &id, Type: c.Type, Name: c.Name, Email: c.Email, Whatsapp: c.Whatsapp}
}

// sendBoth delivers the email and WhatsApp variants of one notice. Failures
// are already logged and recorded by the dispatcher.
func (p *Pipeline) sendBoth(ctx context.Context, ev *eventModel.EventModel, c contact, messageType string,
	email commService.EmailMessage, wa commService.WhatsAppMessage) (emailOK, waOK bool) {
	eventID := ev.EventID
	id := c.ID
	meta := commService.Meta{EventID: &eventID, RecipientType: c.Type, RecipientID: &id, MessageType: messageType}
	if email.To != "" {
		emailOK = p.notify.SendEmail(ctx, email, meta)
	}
	if wa.To != "" {
		waOK = p.notify.SendWhatsApp(ctx, wa, meta)
	}
	return emailOK, waOK
}
