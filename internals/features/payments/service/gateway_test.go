package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"fdp_backend/internals/configs"
	"fdp_backend/internals/features/payments/model"
	helper "fdp_backend/internals/helpers"
)

type memPayments struct {
	rows    map[uuid.UUID]*model.PaymentModel
	// status history per payment, in write order
	history map[uuid.UUID][]string
}

func newMemPayments() *memPayments {
	return &memPayments{rows: map[uuid.UUID]*model.PaymentModel{}, history: map[uuid.UUID][]string{}}
}

func (m *memPayments) CreatePayment(_ context.Context, p *model.PaymentModel) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	cp := *p
	m.rows[p.PaymentID] = &cp
	m.history[p.PaymentID] = append(m.history[p.PaymentID], p.PaymentStatus)
	return nil
}

func (m *memPayments) UpdatePayment(_ context.Context, id uuid.UUID, updates map[string]any) (*model.PaymentModel, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	if st, ok := updates["payment_status"].(string); ok {
		p.PaymentStatus = st
		m.history[id] = append(m.history[id], st)
	}
	return p, nil
}

type stubProvider struct {
	configured  bool
	orderErr    error
	status      string
	fetchCalls  int
	refundCalls int
	lastOrder   ProviderOrder
}

func (s *stubProvider) Name() string { return "stub" }
func (s *stubProvider) Configured() bool { return s.configured }
func (s *stubProvider) CreateOrder(_ context.Context, o ProviderOrder) (*ProviderOrderResponse, error) {
	s.lastOrder = o
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return &ProviderOrderResponse{PaymentSessionID: "sess_1", PaymentLink: "https://pay/1", Raw: []byte(`{"ok":true}`)}, nil
}
func (s *stubProvider) FetchPaymentStatus(context.Context, string, string) (*ProviderPaymentStatus, error) {
	s.fetchCalls++
	return &ProviderPaymentStatus{Status: s.status}, nil
}
func (s *stubProvider) Refund(context.Context, RefundRequest) ([]byte, error) {
	s.refundCalls++
	return []byte(`{}`), nil
}
func (s *stubProvider) VerifyWebhookSignature([]byte, string, string) bool { return true }
func (s *stubProvider) ParseWebhook([]byte) (*WebhookNotification, error) {
	return &WebhookNotification{}, nil
}

func newTestGateway(p *stubProvider) (*Gateway, *memPayments) {
	st := newMemPayments()
	g := NewGateway(st, p,
		configs.Payment{Provider: "cashfree", Currency: "INR", CashfreeSecretKey: "s3cret"},
		configs.Server{AppURL: "https://app.test/", APIURL: "https://api.test"})
	g.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return g, st
}

func TestCreateOrderMovesCreatedToPending(t *testing.T) {
	p := &stubProvider{configured: true}
	g, st := newTestGateway(p)

	res, err := g.CreateOrder(context.Background(), OrderInput{
		Amount:     helper.MoneyFromFloat(1500),
		EntityType: "faculty",
		EntityID:   uuid.New(),
		EventID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if res.PaymentSessionID != "sess_1" || res.PaymentLink != "https://pay/1" {
		t.Errorf("result = %+v", res)
	}
	got := st.history[res.PaymentID]
	if len(got) != 2 || got[0] != model.PaymentStatusCreated || got[1] != model.PaymentStatusPending {
		t.Errorf("status history = %v, want [created pending]", got)
	}
	if st.rows[res.PaymentID].PaymentAmount.String() != "1500.00" {
		t.Errorf("amount = %s", st.rows[res.PaymentID].PaymentAmount)
	}
	if want := "https://app.test/payment/callback?orderId=" + res.OrderID; p.lastOrder.ReturnURL != want {
		t.Errorf("return url = %q, want %q", p.lastOrder.ReturnURL, want)
	}
	if p.lastOrder.NotifyURL != "https://api.test/api/payments/webhook" {
		t.Errorf("notify url = %q", p.lastOrder.NotifyURL)
	}
}

func TestCreateOrderUpstreamFailureKeepsCreatedRow(t *testing.T) {
	p := &stubProvider{configured: true, orderErr: ErrUpstream}
	g, st := newTestGateway(p)

	_, err := g.CreateOrder(context.Background(), OrderInput{Amount: 100, EntityType: "faculty", EntityID: uuid.New(), EventID: uuid.New()})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if len(st.rows) != 1 {
		t.Fatalf("payments = %d, want 1", len(st.rows))
	}
	for _, row := range st.rows {
		if row.PaymentStatus != model.PaymentStatusCreated {
			t.Errorf("status = %q, want created", row.PaymentStatus)
		}
	}
}

func TestCreateOrderWithoutCredentials(t *testing.T) {
	g, st := newTestGateway(&stubProvider{})
	_, err := g.CreateOrder(context.Background(), OrderInput{Amount: 100})
	if !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("err = %v", err)
	}
	if len(st.rows) != 0 {
		t.Fatal("payment row written without credentials")
	}
}

func TestVerifyPaymentMismatchSkipsProvider(t *testing.T) {
	p := &stubProvider{configured: true, status: StatusSuccess}
	g, _ := newTestGateway(p)

	ok, _, err := g.VerifyPayment(context.Background(), "ORDER_1_ab", "pay_1", "deadbeef")
	if err != nil || ok {
		t.Fatalf("VerifyPayment = %v, %v; want false, nil", ok, err)
	}
	if p.fetchCalls != 0 {
		t.Fatalf("provider called %d times on signature mismatch", p.fetchCalls)
	}
}

func TestVerifyPaymentRequiresSuccess(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{StatusSuccess, true},
		{StatusPending, false},
		{StatusFailed, false},
	}
	for _, tc := range cases {
		p := &stubProvider{configured: true, status: tc.status}
		g, _ := newTestGateway(p)
		sig := Sign("s3cret", "ORDER_1_ab", "pay_1")

		ok, _, err := g.VerifyPayment(context.Background(), "ORDER_1_ab", "pay_1", sig)
		if err != nil || ok != tc.want {
			t.Errorf("status %s: VerifyPayment = %v, %v; want %v", tc.status, ok, err, tc.want)
		}
		if p.fetchCalls != 1 {
			t.Errorf("status %s: provider calls = %d, want 1", tc.status, p.fetchCalls)
		}
	}
}

func TestInitiateRefund(t *testing.T) {
	p := &stubProvider{configured: true}
	g, _ := newTestGateway(p)
	if _, err := g.InitiateRefund(context.Background(), "ORDER_1_ab", 150000, "duplicate"); err != nil {
		t.Fatalf("InitiateRefund: %v", err)
	}
	if p.refundCalls != 1 {
		t.Fatalf("refund calls = %d", p.refundCalls)
	}
}
