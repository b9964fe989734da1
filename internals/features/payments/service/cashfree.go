package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fdp_backend/internals/configs"
	"fdp_backend/internals/features/payments/model"
)

/* =========================================================
   Cashfree PG (REST, api version 2023-08-01)
========================================================= */

type CashfreeProvider struct {
	appID   string
	secret  string
	baseURL string
	version string
	client  *http.Client
}

func NewCashfreeProvider(cfg configs.Payment, client *http.Client) *CashfreeProvider {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &CashfreeProvider{
		appID:   cfg.CashfreeAppID,
		secret:  cfg.CashfreeSecretKey,
		baseURL: strings.TrimRight(cfg.CashfreeAPIURL, "/"),
		version: cfg.CashfreeVersion,
		client:  client,
	}
}

func (p *CashfreeProvider) Name() string { return model.GatewayCashfree }

func (p *CashfreeProvider) Configured() bool { return p.appID != "" && p.secret != "" }

type cashfreeCustomer struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
}

type cashfreeOrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

type cashfreeOrderRequest struct {
	OrderID         string            `json:"order_id"`
	OrderAmount     float64           `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails cashfreeCustomer  `json:"customer_details"`
	OrderMeta       cashfreeOrderMeta `json:"order_meta"`
}

type cashfreeOrderResponse struct {
	PaymentSessionID string `json:"payment_session_id"`
	PaymentLink      string `json:"payment_link"`
}

func (p *CashfreeProvider) CreateOrder(ctx context.Context, o ProviderOrder) (*ProviderOrderResponse, error) {
	body := cashfreeOrderRequest{
		OrderID:       o.OrderID,
		OrderAmount:   o.Amount.Float64(),
		OrderCurrency: o.Currency,
		CustomerDetails: cashfreeCustomer{
			CustomerID:    o.Customer.ID,
			CustomerEmail: orDefault(o.Customer.Email, "user@example.com"),
			CustomerPhone: orDefault(o.Customer.Phone, "9999999999"),
			CustomerName:  orDefault(o.Customer.Name, "User"),
		},
		OrderMeta: cashfreeOrderMeta{ReturnURL: o.ReturnURL, NotifyURL: o.NotifyURL},
	}
	raw, err := p.do(ctx, http.MethodPost, "/orders", body)
	if err != nil {
		return nil, err
	}
	var res cashfreeOrderResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%w: decode order response: %v", ErrUpstream, err)
	}
	return &ProviderOrderResponse{
		PaymentSessionID: res.PaymentSessionID,
		PaymentLink:      res.PaymentLink,
		Raw:              raw,
	}, nil
}

func (p *CashfreeProvider) FetchPaymentStatus(ctx context.Context, orderID, paymentRef string) (*ProviderPaymentStatus, error) {
	path := "/orders/" + url.PathEscape(orderID) + "/payments/" + url.PathEscape(paymentRef)
	raw, err := p.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var res struct {
		PaymentStatus string `json:"payment_status"`
		PaymentGroup  string `json:"payment_group"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%w: decode payment: %v", ErrUpstream, err)
	}
	return &ProviderPaymentStatus{
		Status: cashfreeStatus(res.PaymentStatus),
		Method: res.PaymentGroup,
		Raw:    raw,
	}, nil
}

func (p *CashfreeProvider) Refund(ctx context.Context, r RefundRequest) ([]byte, error) {
	body := map[string]any{
		"refund_amount": r.Amount.Float64(),
		"refund_id":     r.RefundID,
		"refund_note":   r.Reason,
	}
	return p.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(r.OrderID)+"/refunds", body)
}

// VerifyWebhookSignature: base64(HMAC-SHA256(timestamp + rawBody, secret)).
func (p *CashfreeProvider) VerifyWebhookSignature(rawBody []byte, signature, timestamp string) bool {
	if p.secret == "" || signature == "" || timestamp == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(p.secret))
	mac.Write([]byte(timestamp))
	mac.Write(rawBody)
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(signature))
}

// ParseWebhook accepts the flat shape ({orderId, paymentStatus, paymentId}),
// Cashfree's nested PAYMENT_*_WEBHOOK shape and REFUND_STATUS_WEBHOOK. A
// refund only counts once Cashfree reports it SUCCESS; other refund states
// come back as pending.
func (p *CashfreeProvider) ParseWebhook(rawBody []byte) (*WebhookNotification, error) {
	var body struct {
		Type          string `json:"type"`
		OrderID       string `json:"orderId"`
		PaymentStatus string `json:"paymentStatus"`
		PaymentID     string `json:"paymentId"`
		Data          struct {
			Order struct {
				OrderID string `json:"order_id"`
			} `json:"order"`
			Payment struct {
				CfPaymentID   json.Number `json:"cf_payment_id"`
				PaymentStatus string      `json:"payment_status"`
				PaymentGroup  string      `json:"payment_group"`
			} `json:"payment"`
			Refund struct {
				OrderID      string `json:"order_id"`
				RefundID     string `json:"refund_id"`
				RefundStatus string `json:"refund_status"`
			} `json:"refund"`
		} `json:"data"`
	}
	dec := json.NewDecoder(bytes.NewReader(rawBody))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	if r := body.Data.Refund; r.RefundStatus != "" {
		if r.OrderID == "" {
			return nil, fmt.Errorf("%w: refund without order id", ErrInvalidWebhook)
		}
		n := &WebhookNotification{
			Type:       body.Type,
			OrderID:    r.OrderID,
			PaymentRef: r.RefundID,
			RawStatus:  r.RefundStatus,
			Status:     StatusPending,
		}
		if strings.EqualFold(r.RefundStatus, "SUCCESS") {
			n.Status = StatusRefunded
		}
		return n, nil
	}

	n := &WebhookNotification{
		Type:       body.Type,
		OrderID:    firstNonEmpty(body.OrderID, body.Data.Order.OrderID),
		PaymentRef: firstNonEmpty(body.PaymentID, body.Data.Payment.CfPaymentID.String()),
		RawStatus:  firstNonEmpty(body.PaymentStatus, body.Data.Payment.PaymentStatus),
		Method:     body.Data.Payment.PaymentGroup,
	}
	if n.OrderID == "" || n.RawStatus == "" {
		return nil, fmt.Errorf("%w: missing order id or status", ErrInvalidWebhook)
	}
	n.Status = cashfreeStatus(n.RawStatus)
	return n, nil
}

func (p *CashfreeProvider) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if !p.Configured() {
		return nil, ErrGatewayNotConfigured
	}
	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-client-id", p.appID)
	req.Header.Set("x-client-secret", p.secret)
	req.Header.Set("x-api-version", p.version)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s -> %d: %s", ErrUpstream, method, path, resp.StatusCode, truncate(string(raw), 300))
	}
	return raw, nil
}

func cashfreeStatus(s string) string {
	switch strings.ToUpper(s) {
	case "SUCCESS":
		return StatusSuccess
	case "PENDING", "NOT_ATTEMPTED":
		return StatusPending
	case "REFUNDED":
		return StatusRefunded
	default:
		return StatusFailed
	}
}

/* =========================================================
   Utils
========================================================= */

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
