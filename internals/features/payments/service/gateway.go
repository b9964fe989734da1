package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"fdp_backend/internals/configs"
	"fdp_backend/internals/features/payments/model"
	helper "fdp_backend/internals/helpers"
)

// PaymentStore is the slice of the entity store the gateway writes to.
type PaymentStore interface {
	CreatePayment(ctx context.Context, m *model.PaymentModel) error
	UpdatePayment(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.PaymentModel, error)
}

type Gateway struct {
	store    PaymentStore
	provider Provider
	secret   string
	currency string
	appURL   string
	apiURL   string
	now      func() time.Time
}

func NewGateway(st PaymentStore, provider Provider, pay configs.Payment, srv configs.Server) *Gateway {
	return &Gateway{
		store:    st,
		provider: provider,
		secret:   pay.SigningSecret(),
		currency: pay.Currency,
		appURL:   strings.TrimRight(srv.AppURL, "/"),
		apiURL:   strings.TrimRight(srv.APIURL, "/"),
		now:      time.Now,
	}
}

// NewProvider picks the configured processor.
func NewProvider(cfg configs.Payment) Provider {
	if strings.EqualFold(cfg.Provider, model.GatewayMidtrans) {
		return NewMidtransProvider(cfg)
	}
	return NewCashfreeProvider(cfg, nil)
}

func (g *Gateway) ProviderName() string { return g.provider.Name() }

// CreateOrder persists a `created` Payment, opens the order upstream and moves
// the row to `pending` with the raw provider response attached. When the
// provider call fails the row stays `created`.
func (g *Gateway) CreateOrder(ctx context.Context, in OrderInput) (*OrderResult, error) {
	if !g.provider.Configured() {
		return nil, ErrGatewayNotConfigured
	}

	orderID := helper.GenOrderID(g.now())
	p := &model.PaymentModel{
		PaymentOrderID:    orderID,
		PaymentEntityType: in.EntityType,
		PaymentEntityID:   in.EntityID,
		PaymentEventID:    in.EventID,
		PaymentAmount:     in.Amount,
		PaymentCurrency:   g.currency,
		PaymentStatus:     model.PaymentStatusCreated,
		PaymentGateway:    g.provider.Name(),
	}
	if err := g.store.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	cust := in.Customer
	if cust.ID == "" {
		cust.ID = in.EntityID.String()
	}
	resp, err := g.provider.CreateOrder(ctx, ProviderOrder{
		OrderID:   orderID,
		Amount:    in.Amount,
		Currency:  g.currency,
		Customer:  cust,
		ReturnURL: g.appURL + "/payment/callback?orderId=" + orderID,
		NotifyURL: g.apiURL + "/api/payments/webhook",
	})
	if err != nil {
		log.Printf("[PAYMENT] ❌ order %s creation failed: %v", orderID, err)
		return nil, err
	}

	if _, err := g.store.UpdatePayment(ctx, p.PaymentID, map[string]any{
		"payment_status":           model.PaymentStatusPending,
		"payment_gateway_response": datatypes.JSON(resp.Raw),
	}); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	return &OrderResult{
		PaymentID:        p.PaymentID,
		OrderID:          orderID,
		PaymentSessionID: resp.PaymentSessionID,
		PaymentLink:      resp.PaymentLink,
	}, nil
}

// Sign is the client-facing payment signature: hex(HMAC-SHA256(orderID + paymentRef)).
func Sign(secret, orderID, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPayment checks the client signature locally and only then asks the
// provider for the authoritative status. True only for SUCCESS.
func (g *Gateway) VerifyPayment(ctx context.Context, orderID, paymentRef, signature string) (bool, *ProviderPaymentStatus, error) {
	if g.secret == "" {
		return false, nil, ErrGatewayNotConfigured
	}
	want := Sign(g.secret, orderID, paymentRef)
	if !hmac.Equal([]byte(want), []byte(strings.ToLower(signature))) {
		log.Printf("[PAYMENT] ❌ signature mismatch for order %s", orderID)
		return false, nil, nil
	}

	st, err := g.provider.FetchPaymentStatus(ctx, orderID, paymentRef)
	if err != nil {
		log.Printf("[PAYMENT] ❌ status lookup for %s failed: %v", orderID, err)
		return false, nil, nil
	}
	if st.Status != StatusSuccess {
		log.Printf("[PAYMENT] order %s not successful: %s", orderID, st.Status)
		return false, st, nil
	}
	return true, st, nil
}

func (g *Gateway) VerifyWebhookSignature(rawBody []byte, signature, timestamp string) bool {
	return g.provider.VerifyWebhookSignature(rawBody, signature, timestamp)
}

func (g *Gateway) ParseWebhook(rawBody []byte) (*WebhookNotification, error) {
	return g.provider.ParseWebhook(rawBody)
}

// InitiateRefund asks the provider to refund an order. The caller owns any
// state change that follows.
func (g *Gateway) InitiateRefund(ctx context.Context, orderID string, amount helper.Money, reason string) ([]byte, error) {
	raw, err := g.provider.Refund(ctx, RefundRequest{
		OrderID:  orderID,
		RefundID: helper.GenRefundID(g.now()),
		Amount:   amount,
		Reason:   reason,
	})
	if err != nil {
		log.Printf("[PAYMENT] ❌ refund for %s failed: %v", orderID, err)
		return nil, err
	}
	log.Printf("[PAYMENT] ✅ refund initiated for %s", orderID)
	return raw, nil
}
