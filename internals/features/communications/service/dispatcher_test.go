package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"fdp_backend/internals/features/communications/model"
)

type memLogs struct {
	mu   sync.Mutex
	rows []model.CommunicationLogModel
}

func (m *memLogs) CreateCommunicationLog(_ context.Context, row *model.CommunicationLogModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, *row)
	return nil
}

type fakeEmail struct {
	mu   sync.Mutex
	fail map[string]bool
	sent []EmailMessage
}

func (f *fakeEmail) SendEmail(_ context.Context, msg EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[msg.To] {
		return errors.New("smtp: 550 mailbox unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeWhatsApp struct {
	mu   sync.Mutex
	sent []WhatsAppMessage
}

func (f *fakeWhatsApp) SendWhatsApp(_ context.Context, msg WhatsAppMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func TestSendEmailFailureIsSwallowedAndLogged(t *testing.T) {
	logs := &memLogs{}
	d := NewDispatcher(&fakeEmail{fail: map[string]bool{"bad@x.com": true}}, &fakeWhatsApp{}, logs)
	eventID := uuid.New()

	ok := d.SendEmail(context.Background(), EmailMessage{To: "bad@x.com", Subject: "s", HTML: "h"},
		Meta{EventID: &eventID, MessageType: model.MessageTypeConfirmation})
	if ok {
		t.Fatal("SendEmail reported success for a failing transport")
	}
	if len(logs.rows) != 1 {
		t.Fatalf("log rows = %d, want 1", len(logs.rows))
	}
	row := logs.rows[0]
	if row.LogStatus != model.LogStatusFailed || row.LogErrorMessage == nil || row.LogSentAt != nil {
		t.Errorf("row = %+v", row)
	}
	if row.LogMessageType != model.MessageTypeConfirmation || *row.LogEventID != eventID {
		t.Errorf("meta not carried: %+v", row)
	}
}

func TestBulkEmailIsolatesFailures(t *testing.T) {
	logs := &memLogs{}
	email := &fakeEmail{fail: map[string]bool{"b@x.com": true}}
	d := NewDispatcher(email, &fakeWhatsApp{}, logs)

	recipients := []Recipient{{Email: "a@x.com"}, {Email: "b@x.com"}, {Email: "c@x.com"}, {Email: ""}}
	sum := d.BulkEmail(context.Background(), nil, recipients, "News", "<p>hi</p>", 2)

	if sum.Total != 4 || sum.Sent != 2 || sum.Failed != 1 || sum.Skipped != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Results[1].Status != ResultFailed || sum.Results[1].Recipient != "b@x.com" {
		t.Errorf("result order not kept: %+v", sum.Results)
	}
	if len(logs.rows) != 3 {
		t.Errorf("log rows = %d, want one per attempt (3)", len(logs.rows))
	}
}

func TestBulkWhatsAppSkipsMissingNumbers(t *testing.T) {
	wa := &fakeWhatsApp{}
	d := NewDispatcher(&fakeEmail{}, wa, &memLogs{})

	sum := d.BulkWhatsApp(context.Background(), nil, []Recipient{{Whatsapp: "+911111111111"}, {Email: "x@x.com"}}, "hello", 4)
	if sum.Sent != 1 || sum.Skipped != 1 || len(wa.sent) != 1 {
		t.Fatalf("summary = %+v, sent = %d", sum, len(wa.sent))
	}
}

func TestConfirmationMessagesCarryLinks(t *testing.T) {
	n := Notice{
		Name: "Jane Doe", EventTitle: "AI in Education", PaymentID: "pay_1", Amount: "1500.00",
		JoiningLink: "https://meet.example/fdp", WhatsAppGroupLink: "https://chat.whatsapp.com/abc",
	}
	em := ConfirmationEmail("j@x.com", n)
	if em.Subject != "✅ Registration Confirmed - AI in Education" {
		t.Errorf("subject = %q", em.Subject)
	}
	for _, want := range []string{"https://meet.example/fdp", "https://chat.whatsapp.com/abc", "₹1500.00", "pay_1"} {
		if !strings.Contains(em.HTML, want) {
			t.Errorf("email missing %q", want)
		}
	}
	wa := ConfirmationWhatsApp("+911234567890", n)
	if !strings.Contains(wa.Body, "WhatsApp Group: https://chat.whatsapp.com/abc") || !strings.Contains(wa.Body, "FDP Link: https://meet.example/fdp") {
		t.Errorf("whatsapp body = %q", wa.Body)
	}

	bare := ConfirmationEmail("j@x.com", Notice{Name: "<b>", EventTitle: "T"})
	if strings.Contains(bare.HTML, "WhatsApp Group") || strings.Contains(bare.HTML, "<b>,") {
		t.Errorf("optional links or unescaped name leaked: %q", bare.HTML)
	}
}
