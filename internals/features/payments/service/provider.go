package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	helper "fdp_backend/internals/helpers"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway credentials not configured")
	ErrUpstream             = errors.New("payment gateway request failed")
	ErrInvalidWebhook       = errors.New("invalid webhook payload")
)

// Normalized gateway payment states. Providers map their own vocabulary onto these.
const (
	StatusSuccess  = "SUCCESS"
	StatusPending  = "PENDING"
	StatusFailed   = "FAILED"
	StatusRefunded = "REFUNDED"
)

type Customer struct {
	ID    string
	Email string
	Phone string
	Name  string
}

type ProviderOrder struct {
	OrderID   string
	Amount    helper.Money
	Currency  string
	Customer  Customer
	ReturnURL string
	NotifyURL string
}

type ProviderOrderResponse struct {
	PaymentSessionID string
	PaymentLink      string
	Raw              []byte
}

type ProviderPaymentStatus struct {
	Status string
	Method string
	Raw    []byte
}

type RefundRequest struct {
	OrderID  string
	RefundID string
	Amount   helper.Money
	Reason   string
}

// WebhookNotification is the provider-independent view of a webhook body.
type WebhookNotification struct {
	OrderID    string
	PaymentRef string
	Status     string
	RawStatus  string
	Type       string
	Method     string
}

func (n *WebhookNotification) Success() bool { return n.Status == StatusSuccess }

// Provider is one payment processor. Signature checks are pure functions of
// their inputs and never touch the network.
type Provider interface {
	Name() string
	Configured() bool
	CreateOrder(ctx context.Context, o ProviderOrder) (*ProviderOrderResponse, error)
	FetchPaymentStatus(ctx context.Context, orderID, paymentRef string) (*ProviderPaymentStatus, error)
	Refund(ctx context.Context, r RefundRequest) ([]byte, error)
	VerifyWebhookSignature(rawBody []byte, signature, timestamp string) bool
	ParseWebhook(rawBody []byte) (*WebhookNotification, error)
}

// OrderInput is what the registration flow knows when it asks for an order.
type OrderInput struct {
	Amount     helper.Money
	EntityType string
	EntityID   uuid.UUID
	EventID    uuid.UUID
	Customer   Customer
}

type OrderResult struct {
	PaymentID        uuid.UUID `json:"paymentId"`
	OrderID          string    `json:"orderId"`
	PaymentSessionID string    `json:"paymentSessionId,omitempty"`
	PaymentLink      string    `json:"paymentLink,omitempty"`
}
