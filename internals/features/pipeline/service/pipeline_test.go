package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"fdp_backend/internals/configs"
	"fdp_backend/internals/databases/testdb"
	certModel "fdp_backend/internals/features/certificates/model"
	certService "fdp_backend/internals/features/certificates/service"
	commService "fdp_backend/internals/features/communications/service"
	couponModel "fdp_backend/internals/features/coupons/model"
	eventModel "fdp_backend/internals/features/events/model"
	payModel "fdp_backend/internals/features/payments/model"
	payService "fdp_backend/internals/features/payments/service"
	regModel "fdp_backend/internals/features/registrations/model"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/helpers/blob"
	"fdp_backend/internals/store"
)

const secret = "test-secret"

type fakeProvider struct {
	orderErr   error
	status     string
	webhookOK  bool
	notif       *payService.WebhookNotification
	fetchCalls  int
	refundCalls int
}

func (f *fakeProvider) Name() string     { return "cashfree" }
func (f *fakeProvider) Configured() bool { return true }
func (f *fakeProvider) CreateOrder(_ context.Context, o payService.ProviderOrder) (*payService.ProviderOrderResponse, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return &payService.ProviderOrderResponse{
		PaymentSessionID: "session_" + o.OrderID,
		Raw:              []byte(`{"order_status":"ACTIVE"}`),
	}, nil
}
func (f *fakeProvider) FetchPaymentStatus(context.Context, string, string) (*payService.ProviderPaymentStatus, error) {
	f.fetchCalls++
	return &payService.ProviderPaymentStatus{Status: f.status, Method: "upi", Raw: []byte(`{"payment_status":"SUCCESS"}`)}, nil
}
func (f *fakeProvider) Refund(context.Context, payService.RefundRequest) ([]byte, error) {
	f.refundCalls++
	return []byte(`{"refund_status":"PENDING"}`), nil
}
func (f *fakeProvider) VerifyWebhookSignature([]byte, string, string) bool { return f.webhookOK }
func (f *fakeProvider) ParseWebhook([]byte) (*payService.WebhookNotification, error) {
	if f.notif == nil {
		return nil, payService.ErrInvalidWebhook
	}
	return f.notif, nil
}

type sink struct {
	mu       sync.Mutex
	emails   []commService.EmailMessage
	whatsapp []commService.WhatsAppMessage
}

func (s *sink) SendEmail(_ context.Context, m commService.EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, m)
	return nil
}

func (s *sink) SendWhatsApp(_ context.Context, m commService.WhatsAppMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.whatsapp = append(s.whatsapp, m)
	return nil
}

func (s *sink) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emails), len(s.whatsapp)
}

// flakyEngine fails for any document that mentions one of the names.
type flakyEngine struct {
	failFor []string
}

func (e *flakyEngine) PrintPDF(_ context.Context, html string) ([]byte, error) {
	for _, name := range e.failFor {
		if strings.Contains(html, name) {
			return nil, errors.New("chrome crashed")
		}
	}
	return []byte("%PDF-1.4"), nil
}

type harness struct {
	p      *Pipeline
	st     *store.Store
	prov   *fakeProvider
	sink   *sink
	engine *flakyEngine
	event  *eventModel.EventModel
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st := store.New(testdb.Open(t))
	prov := &fakeProvider{status: payService.StatusSuccess, webhookOK: true}
	gw := payService.NewGateway(st, prov,
		configs.Payment{Provider: "cashfree", Currency: "INR", CashfreeSecretKey: secret},
		configs.Server{AppURL: "http://app.test", APIURL: "http://api.test"})
	snk := &sink{}
	engine := &flakyEngine{}
	p := New(st, gw,
		commService.NewDispatcher(snk, snk, st),
		certService.NewRenderer(engine, blob.NewLocalStore(t.TempDir(), "/uploads")),
		nil,
		configs.Bulk{Concurrency: 2},
	)

	joining := "https://meet.test/e1"
	ev := &eventModel.EventModel{
		EventTitle:       "E1",
		EventCategory:    "engineering",
		EventStartDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EventEndDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		EventHostFee:     helper.Money(500000),
		EventFacultyFee:  helper.Money(150000),
		EventJoiningLink: &joining,
	}
	if err := st.CreateEvent(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	return &harness{p: p, st: st, prov: prov, sink: snk, engine: engine, event: ev}
}

func (h *harness) register(t *testing.T, name string) *FacultyRegistration {
	t.Helper()
	res, err := h.p.RegisterFaculty(context.Background(), &regModel.FacultyRegistrationModel{
		FacultyEventID: h.event.EventID,
		FacultyName:    name,
		FacultyEmail:   strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@x.com",
		FacultyPhone:   "+911234567890",
	}, "")
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return res
}

// paidWithFeedback registers a faculty member and moves them straight to
// completed with feedback submitted.
func (h *harness) paidWithFeedback(t *testing.T, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := h.register(t, name).Registration.FacultyID
	if _, err := h.st.MarkFacultyPaid(ctx, id, "ref_"+name, h.event.EventFacultyFee); err != nil {
		t.Fatal(err)
	}
	if err := h.st.MarkFeedbackSubmitted(ctx, id); err != nil {
		t.Fatal(err)
	}
	return id
}

func (h *harness) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := h.st.DB.Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestFacultyRegistrationEndToEnd(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.p.RegisterFaculty(ctx, &regModel.FacultyRegistrationModel{
		FacultyEventID: h.event.EventID,
		FacultyName:    "Jane Doe",
		FacultyEmail:   "j@x.com",
		FacultyPhone:   "+911234567890",
	}, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	orderID := res.PaymentOrder.OrderID

	pay, err := h.st.GetPaymentByOrderID(ctx, orderID)
	if err != nil || pay == nil {
		t.Fatalf("payment row: %v", err)
	}
	if pay.PaymentAmount.String() != "1500.00" {
		t.Errorf("amount = %s, want 1500.00", pay.PaymentAmount)
	}
	if pay.PaymentStatus != payModel.PaymentStatusPending {
		t.Errorf("status = %s, want pending", pay.PaymentStatus)
	}

	conf, err := h.p.ConfirmPayment(ctx, ConfirmInput{
		OrderID:    orderID,
		PaymentRef: "cf_123",
		Signature:  payService.Sign(secret, orderID, "cf_123"),
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !conf.Confirmed || conf.Payment.PaymentStatus != payModel.PaymentStatusSuccess {
		t.Fatalf("confirm result = %+v", conf)
	}

	f, _ := h.st.GetFaculty(ctx, res.Registration.FacultyID)
	if f.FacultyPaymentStatus != regModel.PaymentStatusCompleted {
		t.Errorf("faculty status = %s", f.FacultyPaymentStatus)
	}
	if f.FacultyAmountPaid == nil || f.FacultyAmountPaid.String() != "1500.00" {
		t.Errorf("amount paid = %v", f.FacultyAmountPaid)
	}

	emails, was := h.sink.counts()
	if emails != 1 || was != 1 {
		t.Fatalf("sends after confirm: email=%d whatsapp=%d, want 1/1", emails, was)
	}
	if h.sink.emails[0].To != "j@x.com" || h.sink.whatsapp[0].To != "+911234567890" {
		t.Errorf("recipients = %s / %s", h.sink.emails[0].To, h.sink.whatsapp[0].To)
	}

	again, err := h.p.ConfirmPayment(ctx, ConfirmInput{
		OrderID:    orderID,
		PaymentRef: "cf_123",
		Signature:  payService.Sign(secret, orderID, "cf_123"),
	})
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if again.Confirmed {
		t.Error("second confirm reported a fresh transition")
	}
	if emails, was := h.sink.counts(); emails != 1 || was != 1 {
		t.Errorf("repeat confirm re-sent notifications: email=%d whatsapp=%d", emails, was)
	}
}

func TestConfirmRejectsBadSignature(t *testing.T) {
	h := newHarness(t)
	res := h.register(t, "Ravi Kumar")

	_, err := h.p.ConfirmPayment(context.Background(), ConfirmInput{
		OrderID:    res.PaymentOrder.OrderID,
		PaymentRef: "cf_1",
		Signature:  "deadbeef",
	})
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("err = %v", err)
	}
	if h.prov.fetchCalls != 0 {
		t.Error("provider was queried despite a bad signature")
	}
}

func TestRegisterFeeComesFromEvent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.p.RegisterHostCollege(ctx, &regModel.HostCollegeModel{
		HostCollegeEventID:       h.event.EventID,
		HostCollegeName:          "ABC Institute",
		HostCollegeContactPerson: "Dr. Rao",
		HostCollegeEmail:         "rao@abc.edu",
		HostCollegePhone:         "+919000000000",
	})
	if err != nil {
		t.Fatalf("register host: %v", err)
	}
	pay, _ := h.st.GetPaymentByOrderID(ctx, res.PaymentOrder.OrderID)
	if pay.PaymentAmount.String() != "5000.00" || pay.PaymentEntityType != "host_college" {
		t.Errorf("payment = %s %s", pay.PaymentAmount, pay.PaymentEntityType)
	}
}

func TestRegisterUnknownEvent(t *testing.T) {
	h := newHarness(t)
	_, err := h.p.RegisterFaculty(context.Background(), &regModel.FacultyRegistrationModel{
		FacultyEventID: uuid.New(),
		FacultyName:    "Nobody",
		FacultyEmail:   "n@x.com",
		FacultyPhone:   "1",
	}, "")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v", err)
	}
	if n := h.countRows(t, &regModel.FacultyRegistrationModel{}); n != 0 {
		t.Errorf("%d faculty rows written", n)
	}
}

func TestUpstreamFailureKeepsRegistration(t *testing.T) {
	h := newHarness(t)
	h.prov.orderErr = payService.ErrUpstream

	_, err := h.p.RegisterFaculty(context.Background(), &regModel.FacultyRegistrationModel{
		FacultyEventID: h.event.EventID,
		FacultyName:    "Asha",
		FacultyEmail:   "a@x.com",
		FacultyPhone:   "2",
	}, "")
	if !errors.Is(err, ErrPaymentUpstream) {
		t.Fatalf("err = %v", err)
	}
	if n := h.countRows(t, &regModel.FacultyRegistrationModel{}); n != 1 {
		t.Errorf("faculty rows = %d, want 1", n)
	}
	var p payModel.PaymentModel
	if err := h.st.DB.Take(&p).Error; err != nil {
		t.Fatal(err)
	}
	if p.PaymentStatus != payModel.PaymentStatusCreated {
		t.Errorf("payment status = %s, want created", p.PaymentStatus)
	}
}

func TestWebhookBadSignatureWritesNothing(t *testing.T) {
	h := newHarness(t)
	res := h.register(t, "Meera")
	h.prov.webhookOK = false
	h.prov.notif = &payService.WebhookNotification{OrderID: res.PaymentOrder.OrderID, Status: payService.StatusSuccess}

	err := h.p.HandleWebhook(context.Background(), WebhookInput{RawBody: []byte(`{}`), Signature: "x", Timestamp: "1"})
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err = %v", err)
	}
	if n := h.countRows(t, &payModel.PaymentGatewayEventModel{}); n != 0 {
		t.Errorf("%d gateway events stored", n)
	}
	pay, _ := h.st.GetPaymentByOrderID(context.Background(), res.PaymentOrder.OrderID)
	if pay.PaymentStatus != payModel.PaymentStatusPending {
		t.Errorf("payment status changed to %s", pay.PaymentStatus)
	}
}

func TestWebhookFailureNotifiesOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.register(t, "Kiran")
	h.prov.notif = &payService.WebhookNotification{
		OrderID:    res.PaymentOrder.OrderID,
		PaymentRef: "cf_9",
		Status:     payService.StatusFailed,
	}
	body := []byte(`{"type":"PAYMENT_FAILED_WEBHOOK"}`)

	for i := 0; i < 2; i++ {
		if err := h.p.HandleWebhook(ctx, WebhookInput{RawBody: body, Signature: "sig", Timestamp: "1"}); err != nil {
			t.Fatalf("delivery %d: %v", i, err)
		}
	}

	f, _ := h.st.GetFaculty(ctx, res.Registration.FacultyID)
	if f.FacultyPaymentStatus != regModel.PaymentStatusFailed {
		t.Errorf("faculty status = %s", f.FacultyPaymentStatus)
	}
	if emails, _ := h.sink.counts(); emails != 1 {
		t.Errorf("failure emails = %d, want 1", emails)
	}
	if !strings.Contains(h.sink.emails[0].Subject, "Payment Failed") {
		t.Errorf("subject = %q", h.sink.emails[0].Subject)
	}
	if n := h.countRows(t, &payModel.PaymentGatewayEventModel{}); n != 2 {
		t.Errorf("gateway events = %d, want 2", n)
	}
}

func TestWebhookSuccessThenLateFailureKeepsSuccess(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.register(t, "Latha")
	order := res.PaymentOrder.OrderID

	h.prov.notif = &payService.WebhookNotification{OrderID: order, PaymentRef: "cf_1", Status: payService.StatusSuccess}
	if err := h.p.HandleWebhook(ctx, WebhookInput{RawBody: []byte(`{}`)}); err != nil {
		t.Fatal(err)
	}
	h.prov.notif = &payService.WebhookNotification{OrderID: order, PaymentRef: "cf_1", Status: payService.StatusFailed}
	if err := h.p.HandleWebhook(ctx, WebhookInput{RawBody: []byte(`{}`)}); err != nil {
		t.Fatal(err)
	}

	pay, _ := h.st.GetPaymentByOrderID(ctx, order)
	if pay.PaymentStatus != payModel.PaymentStatusSuccess {
		t.Errorf("payment status = %s, want success", pay.PaymentStatus)
	}
	f, _ := h.st.GetFaculty(ctx, res.Registration.FacultyID)
	if f.FacultyPaymentStatus != regModel.PaymentStatusCompleted {
		t.Errorf("faculty status = %s", f.FacultyPaymentStatus)
	}
}

func TestWebhookUnknownOrderIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.prov.notif = &payService.WebhookNotification{OrderID: "ORDER_0_missing", Status: payService.StatusSuccess}
	if err := h.p.HandleWebhook(context.Background(), WebhookInput{RawBody: []byte(`{}`)}); err != nil {
		t.Fatalf("err = %v", err)
	}
	var gev payModel.PaymentGatewayEventModel
	if err := h.st.DB.Take(&gev).Error; err != nil {
		t.Fatal(err)
	}
	if gev.GatewayEventStatus != payModel.GatewayEventStatusIgnored {
		t.Errorf("gateway event status = %s", gev.GatewayEventStatus)
	}
}

func TestFeedbackOnPendingRegistrationIssuesNothing(t *testing.T) {
	h := newHarness(t)
	res := h.register(t, "Pending Person")

	out, err := h.p.SubmitFeedback(context.Background(), res.Registration.FacultyID)
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if !out.Registration.FacultyFeedbackSubmitted {
		t.Error("feedback flag not set")
	}
	if out.Certificate != nil || out.CertificateStatus != CertSkipped {
		t.Errorf("certificate issued for a pending registration: %+v", out)
	}
	if n := h.countRows(t, &certModel.CertificateModel{}); n != 0 {
		t.Errorf("certificate rows = %d", n)
	}
}

func TestFeedbackTwiceIssuesOneCertificate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.register(t, "Jane Doe").Registration.FacultyID
	if _, err := h.st.MarkFacultyPaid(ctx, id, "cf_1", h.event.EventFacultyFee); err != nil {
		t.Fatal(err)
	}

	first, err := h.p.SubmitFeedback(ctx, id)
	if err != nil {
		t.Fatalf("first feedback: %v", err)
	}
	if first.CertificateStatus != CertGenerated || first.Certificate == nil {
		t.Fatalf("first = %+v", first)
	}
	if !strings.HasPrefix(first.Certificate.CertificateURL, "/uploads/certificates/CERT-") {
		t.Errorf("url = %s", first.Certificate.CertificateURL)
	}

	second, err := h.p.SubmitFeedback(ctx, id)
	if err != nil {
		t.Fatalf("second feedback: %v", err)
	}
	if second.CertificateStatus != CertAlreadyExists {
		t.Errorf("second status = %s", second.CertificateStatus)
	}
	if n := h.countRows(t, &certModel.CertificateModel{}); n != 1 {
		t.Errorf("certificate rows = %d, want 1", n)
	}
	if !second.Registration.FacultyCertificateGenerated {
		t.Error("certificateGenerated not set")
	}
}

func TestBulkGenerateIsolatesFailures(t *testing.T) {
	h := newHarness(t)
	h.paidWithFeedback(t, "Alice")
	bob := h.paidWithFeedback(t, "Bob")
	h.paidWithFeedback(t, "Carol")
	h.register(t, "Unpaid Dave")
	h.engine.failFor = []string{"Bob"}

	sum, err := h.p.BulkGenerateCertificates(context.Background(), h.event.EventID)
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if sum.Total != 3 || sum.Generated != 2 || sum.Errors != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	for _, r := range sum.Results {
		if r.FacultyID == bob && r.Status != CertError {
			t.Errorf("bob status = %s", r.Status)
		}
	}

	again, err := h.p.BulkGenerateCertificates(context.Background(), h.event.EventID)
	if err != nil {
		t.Fatal(err)
	}
	if again.AlreadyExists != 2 || again.Errors != 1 {
		t.Errorf("rerun summary = %+v", again)
	}
}

func TestRefundMovesRegistrationToRefunded(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.register(t, "Vikram")
	order := res.PaymentOrder.OrderID

	if _, err := h.p.RefundPayment(ctx, order, nil, ""); !errors.Is(err, ErrNotRefundable) {
		t.Fatalf("refund of pending payment: %v", err)
	}
	if _, err := h.p.ConfirmPayment(ctx, ConfirmInput{OrderID: order, PaymentRef: "cf_2", Signature: payService.Sign(secret, order, "cf_2")}); err != nil {
		t.Fatal(err)
	}
	over := helper.Money(999999)
	if _, err := h.p.RefundPayment(ctx, order, &over, ""); !errors.Is(err, ErrRefundAmount) {
		t.Fatalf("over-refund: %v", err)
	}

	pay, err := h.p.RefundPayment(ctx, order, nil, "cancelled")
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if pay.PaymentStatus != payModel.PaymentStatusRefunded {
		t.Errorf("payment status = %s", pay.PaymentStatus)
	}
	f, _ := h.st.GetFaculty(ctx, res.Registration.FacultyID)
	if f.FacultyPaymentStatus != regModel.PaymentStatusRefunded {
		t.Errorf("faculty status = %s", f.FacultyPaymentStatus)
	}
}

func TestRemindersGoOutOncePerRegistrant(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.paidWithFeedback(t, "Anil")
	h.register(t, "Unpaid")

	first, err := h.p.SendEventReminders(ctx, h.event.EventID)
	if err != nil {
		t.Fatal(err)
	}
	if first.Total != 1 || first.Sent != 1 {
		t.Fatalf("first run = %+v", first)
	}
	second, err := h.p.SendEventReminders(ctx, h.event.EventID)
	if err != nil {
		t.Fatal(err)
	}
	if second.Sent != 0 || second.Skipped != 1 {
		t.Errorf("second run = %+v", second)
	}
	if emails, _ := h.sink.counts(); emails != 1 {
		t.Errorf("reminder emails = %d", emails)
	}
}

func TestBulkEmailDefaultsToPaidRegistrants(t *testing.T) {
	h := newHarness(t)
	h.paidWithFeedback(t, "Paid One")
	h.paidWithFeedback(t, "Paid Two")
	h.register(t, "Unpaid Three")

	id := h.event.EventID
	sum, err := h.p.BulkEmail(context.Background(), BulkEmailInput{EventID: &id, Subject: "Schedule", Content: "<p>hi</p>"})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Total != 2 || sum.Sent != 2 {
		t.Errorf("summary = %+v", sum)
	}

	missing := uuid.New()
	if _, err := h.p.BulkEmail(context.Background(), BulkEmailInput{EventID: &missing}); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("unknown event: %v", err)
	}
}

func TestRefundedPaymentIgnoresLateSuccess(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.register(t, "Ravi")
	order := res.PaymentOrder.OrderID

	if _, err := h.p.ConfirmPayment(ctx, ConfirmInput{OrderID: order, PaymentRef: "cf_3", Signature: payService.Sign(secret, order, "cf_3")}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.p.RefundPayment(ctx, order, nil, ""); err != nil {
		t.Fatalf("refund: %v", err)
	}

	h.prov.notif = &payService.WebhookNotification{OrderID: order, PaymentRef: "cf_3", Status: payService.StatusSuccess}
	if err := h.p.HandleWebhook(ctx, WebhookInput{RawBody: []byte(`{}`)}); err != nil {
		t.Fatalf("late success webhook: %v", err)
	}

	pay, _ := h.st.GetPaymentByOrderID(ctx, order)
	if pay.PaymentStatus != payModel.PaymentStatusRefunded {
		t.Errorf("payment status = %s, want refunded", pay.PaymentStatus)
	}
	f, _ := h.st.GetFaculty(ctx, res.Registration.FacultyID)
	if f.FacultyPaymentStatus != regModel.PaymentStatusRefunded {
		t.Errorf("faculty status = %s, want refunded", f.FacultyPaymentStatus)
	}

	if _, err := h.p.RefundPayment(ctx, order, nil, ""); !errors.Is(err, ErrNotRefundable) {
		t.Fatalf("second refund: %v", err)
	}
	if h.prov.refundCalls != 1 {
		t.Errorf("gateway refunds = %d, want 1", h.prov.refundCalls)
	}
	if emails, _ := h.sink.counts(); emails != 1 {
		t.Errorf("confirmation emails = %d, want 1", emails)
	}
}

func TestRefundWebhookOnlyMovesSuccessfulPayment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.register(t, "Sunita")
	order := res.PaymentOrder.OrderID

	h.prov.notif = &payService.WebhookNotification{OrderID: order, Status: payService.StatusRefunded}
	if err := h.p.HandleWebhook(ctx, WebhookInput{RawBody: []byte(`{}`)}); err != nil {
		t.Fatal(err)
	}
	pay, _ := h.st.GetPaymentByOrderID(ctx, order)
	if pay.PaymentStatus != payModel.PaymentStatusPending {
		t.Errorf("refund webhook moved a pending payment to %s", pay.PaymentStatus)
	}
}

func newCoupon(t *testing.T, h *harness, code, kind string, value helper.Money) *couponModel.CouponModel {
	t.Helper()
	one := 1
	c := &couponModel.CouponModel{
		CouponCode:          code,
		CouponDiscountType:  kind,
		CouponDiscountValue: value,
		CouponMaxUses:       &one,
		CouponIsActive:      true,
	}
	if err := h.st.CreateCoupon(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	return c
}

func facultyModel(h *harness, name string) *regModel.FacultyRegistrationModel {
	return &regModel.FacultyRegistrationModel{
		FacultyEventID: h.event.EventID,
		FacultyName:    name,
		FacultyEmail:   strings.ToLower(name) + "@x.com",
		FacultyPhone:   "+911234567890",
	}
}

func TestFullDiscountCouponCompletesWithoutOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	newCoupon(t, h, "FREE100", couponModel.DiscountPercentage, 10000)

	res, err := h.p.RegisterFaculty(ctx, facultyModel(h, "Gita"), "free100")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.PaymentOrder != nil {
		t.Errorf("order opened for a zero amount: %+v", res.PaymentOrder)
	}
	f := res.Registration
	if f.FacultyPaymentStatus != regModel.PaymentStatusCompleted {
		t.Errorf("faculty status = %s, want completed", f.FacultyPaymentStatus)
	}
	if f.FacultyPaymentReference == nil || *f.FacultyPaymentReference != "COUPON_FREE100" {
		t.Errorf("reference = %v", f.FacultyPaymentReference)
	}
	if n := h.countRows(t, &payModel.PaymentModel{}); n != 0 {
		t.Errorf("payment rows = %d, want 0", n)
	}
	if emails, _ := h.sink.counts(); emails != 1 {
		t.Errorf("confirmation emails = %d, want 1", emails)
	}

	c, _ := h.st.GetCouponByCode(ctx, "FREE100")
	if c.CouponUsedCount != 1 {
		t.Errorf("used count = %d, want 1", c.CouponUsedCount)
	}
}

func TestCouponReleasedWhenOrderFails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	newCoupon(t, h, "SAVE500", couponModel.DiscountFixed, 50000)

	h.prov.orderErr = errors.New("gateway down")
	if _, err := h.p.RegisterFaculty(ctx, facultyModel(h, "Hari"), "SAVE500"); !errors.Is(err, ErrPaymentUpstream) {
		t.Fatalf("err = %v, want upstream failure", err)
	}
	c, _ := h.st.GetCouponByCode(ctx, "SAVE500")
	if c.CouponUsedCount != 0 {
		t.Fatalf("used count after failed order = %d, want 0", c.CouponUsedCount)
	}

	h.prov.orderErr = nil
	res, err := h.p.RegisterFaculty(ctx, facultyModel(h, "Hari"), "SAVE500")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	pay, _ := h.st.GetPaymentByOrderID(ctx, res.PaymentOrder.OrderID)
	if pay.PaymentAmount != 100000 {
		t.Errorf("order amount = %s, want 1000.00", pay.PaymentAmount)
	}
}

func TestFreeHostCollegeCompletesWithoutOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.st.UpdateEvent(ctx, h.event.EventID, map[string]any{"event_host_fee": helper.Money(0)}); err != nil {
		t.Fatal(err)
	}

	res, err := h.p.RegisterHostCollege(ctx, &regModel.HostCollegeModel{
		HostCollegeEventID:       h.event.EventID,
		HostCollegeName:          "Free College",
		HostCollegeContactPerson: "Dean",
		HostCollegeEmail:         "dean@free.edu",
		HostCollegePhone:         "+911234567890",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.PaymentOrder != nil || res.HostCollege.HostCollegePaymentStatus != regModel.PaymentStatusCompleted {
		t.Errorf("result = %+v", res)
	}
}

func TestExistingCertificateRestoresFacultyFlag(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.paidWithFeedback(t, "Uma")

	if _, status, err := h.p.IssueCertificate(ctx, id, false); err != nil || status != CertGenerated {
		t.Fatalf("first issue: %s %v", status, err)
	}
	if err := h.st.DB.Model(&regModel.FacultyRegistrationModel{}).
		Where("faculty_id = ?", id).
		Update("faculty_certificate_generated", false).Error; err != nil {
		t.Fatal(err)
	}

	_, status, err := h.p.IssueCertificate(ctx, id, false)
	if err != nil || status != CertAlreadyExists {
		t.Fatalf("second issue: %s %v", status, err)
	}
	f, _ := h.st.GetFaculty(ctx, id)
	if !f.FacultyCertificateGenerated {
		t.Error("certificate flag not restored")
	}
}
