package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"fdp_backend/internals/configs"
)

func TestCloudWhatsAppTextAndTemplate(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/PHONE1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		var m map[string]any
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &m)
		bodies = append(bodies, m)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	s := NewWhatsAppSender(configs.WhatsApp{APIURL: srv.URL, PhoneID: "PHONE1", Token: "tok", RequestTimeout: time.Second})
	ctx := context.Background()

	if err := s.SendWhatsApp(ctx, WhatsAppMessage{To: "+911234567890", Body: "hello"}); err != nil {
		t.Fatalf("text: %v", err)
	}
	if err := s.SendWhatsApp(ctx, WhatsAppMessage{To: "+911234567890", TemplateName: "fdp_reminder", TemplateParams: []string{"Jane", "AI"}}); err != nil {
		t.Fatalf("template: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("requests = %d", len(bodies))
	}
	if bodies[0]["type"] != "text" || bodies[0]["messaging_product"] != "whatsapp" {
		t.Errorf("text payload = %v", bodies[0])
	}
	tpl, _ := bodies[1]["template"].(map[string]any)
	comps, _ := tpl["components"].([]any)
	if bodies[1]["type"] != "template" || tpl["name"] != "fdp_reminder" || len(comps) != 1 {
		t.Errorf("template payload = %v", bodies[1])
	}
}

func TestCloudWhatsAppNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad token"}}`))
	}))
	defer srv.Close()

	s := NewWhatsAppSender(configs.WhatsApp{APIURL: srv.URL, PhoneID: "P", Token: "t", RequestTimeout: time.Second})
	if err := s.SendWhatsApp(context.Background(), WhatsAppMessage{To: "1", Body: "x"}); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestTwilioWhatsAppForm(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Accounts/AC1/Messages.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC1" || pass != "secret" {
			t.Errorf("basic auth = %q %q %v", user, pass, ok)
		}
		_ = r.ParseForm()
		form = r.PostForm
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1"}`))
	}))
	defer srv.Close()

	s := NewWhatsAppSender(configs.WhatsApp{
		Provider: "twilio", TwilioAPIURL: srv.URL, TwilioSID: "AC1", TwilioToken: "secret",
		TwilioNumber: "+14155238886", RequestTimeout: time.Second,
	})
	if err := s.SendWhatsApp(context.Background(), WhatsAppMessage{To: "+911234567890", Body: "hi"}); err != nil {
		t.Fatalf("SendWhatsApp: %v", err)
	}
	if form.Get("From") != "whatsapp:+14155238886" || form.Get("To") != "whatsapp:+911234567890" || form.Get("Body") != "hi" {
		t.Errorf("form = %v", form)
	}
}

func TestUnconfiguredSendersFail(t *testing.T) {
	if _, ok := NewWhatsAppSender(configs.WhatsApp{}).(NoopSender); !ok {
		t.Error("cloud sender without credentials should be a noop")
	}
	if _, ok := NewEmailSender(configs.SMTP{Host: "smtp.example.com"}).(NoopSender); !ok {
		t.Error("smtp sender without credentials should be a noop")
	}
}
