package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"fdp_backend/internals/configs"
	"fdp_backend/internals/features/payments/model"
)

/* =========================================================
   Midtrans (Snap for checkout, Core API for status/refund)
========================================================= */

type MidtransProvider struct {
	serverKey string
	snap      snap.Client
	core      coreapi.Client
}

func NewMidtransProvider(cfg configs.Payment) *MidtransProvider {
	env := midtrans.Sandbox
	if cfg.MidtransUseProd {
		env = midtrans.Production
	}
	p := &MidtransProvider{serverKey: cfg.MidtransServerKey}
	p.snap.New(cfg.MidtransServerKey, env)
	p.core.New(cfg.MidtransServerKey, env)
	return p
}

func (p *MidtransProvider) Name() string { return model.GatewayMidtrans }

func (p *MidtransProvider) Configured() bool { return p.serverKey != "" }

func (p *MidtransProvider) CreateOrder(ctx context.Context, o ProviderOrder) (*ProviderOrderResponse, error) {
	if !p.Configured() {
		return nil, ErrGatewayNotConfigured
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  o.OrderID,
			GrossAmt: wholeUnits(o),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: orDefault(o.Customer.Name, "User"),
			Email: orDefault(o.Customer.Email, "user@example.com"),
			Phone: orDefault(o.Customer.Phone, "9999999999"),
		},
	}
	resp, merr := p.snap.CreateTransaction(req)
	if merr != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, merr.Error())
	}
	raw, _ := sonic.Marshal(resp)
	return &ProviderOrderResponse{
		PaymentSessionID: resp.Token,
		PaymentLink:      resp.RedirectURL,
		Raw:              raw,
	}, nil
}

// FetchPaymentStatus looks the transaction up by order id; Midtrans has no
// separate payment id in the path.
func (p *MidtransProvider) FetchPaymentStatus(ctx context.Context, orderID, paymentRef string) (*ProviderPaymentStatus, error) {
	if !p.Configured() {
		return nil, ErrGatewayNotConfigured
	}
	resp, merr := p.core.CheckTransaction(orderID)
	if merr != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, merr.Error())
	}
	raw, _ := sonic.Marshal(resp)
	return &ProviderPaymentStatus{
		Status: midtransStatus(resp.TransactionStatus, resp.FraudStatus),
		Method: resp.PaymentType,
		Raw:    raw,
	}, nil
}

func (p *MidtransProvider) Refund(ctx context.Context, r RefundRequest) ([]byte, error) {
	if !p.Configured() {
		return nil, ErrGatewayNotConfigured
	}
	resp, merr := p.core.RefundTransaction(r.OrderID, &coreapi.RefundReq{
		RefundKey: r.RefundID,
		Amount:    int64(r.Amount) / 100,
		Reason:    r.Reason,
	})
	if merr != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, merr.Error())
	}
	return sonic.Marshal(resp)
}

type midtransNotif struct {
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, refund, failure
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}

// VerifyWebhookSignature: SHA512(order_id + status_code + gross_amount + ServerKey).
// The signature travels in the body; a header value, when present, must agree.
func (p *MidtransProvider) VerifyWebhookSignature(rawBody []byte, signature, timestamp string) bool {
	if p.serverKey == "" {
		return false
	}
	var n midtransNotif
	if err := sonic.Unmarshal(rawBody, &n); err != nil {
		return false
	}
	want := strings.ToLower(n.SignatureKey)
	if want == "" || (signature != "" && !strings.EqualFold(signature, want)) {
		return false
	}
	h := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + p.serverKey))
	return hex.EncodeToString(h[:]) == want
}

func (p *MidtransProvider) ParseWebhook(rawBody []byte) (*WebhookNotification, error) {
	var n midtransNotif
	if err := sonic.Unmarshal(rawBody, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	if n.OrderID == "" || n.TransactionStatus == "" {
		return nil, fmt.Errorf("%w: missing order id or status", ErrInvalidWebhook)
	}
	return &WebhookNotification{
		OrderID:    n.OrderID,
		PaymentRef: n.TransactionID,
		RawStatus:  n.TransactionStatus,
		Status:     midtransStatus(n.TransactionStatus, n.FraudStatus),
		Type:       n.TransactionStatus,
		Method:     n.PaymentType,
	}, nil
}

func midtransStatus(tx, fraud string) string {
	switch tx {
	case "settlement":
		return StatusSuccess
	case "capture":
		if fraud == "" || fraud == "accept" {
			return StatusSuccess
		}
		return StatusPending
	case "pending":
		return StatusPending
	case "refund", "partial_refund":
		return StatusRefunded
	default:
		return StatusFailed
	}
}

func wholeUnits(o ProviderOrder) int64 {
	return (int64(o.Amount) + 50) / 100
}
