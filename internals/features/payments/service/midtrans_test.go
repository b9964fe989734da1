package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"

	"fdp_backend/internals/configs"
)

func TestMidtransWebhookSignature(t *testing.T) {
	p := NewMidtransProvider(configs.Payment{MidtransServerKey: "SB-key"})

	h := sha512.Sum512([]byte("ORDER_1" + "200" + "1500.00" + "SB-key"))
	sig := hex.EncodeToString(h[:])
	body := []byte(fmt.Sprintf(`{"order_id":"ORDER_1","status_code":"200","gross_amount":"1500.00","signature_key":"%s","transaction_status":"settlement","transaction_id":"tx_1"}`, sig))

	if !p.VerifyWebhookSignature(body, "", "") {
		t.Fatal("valid body signature rejected")
	}
	tampered := []byte(fmt.Sprintf(`{"order_id":"ORDER_1","status_code":"200","gross_amount":"1.00","signature_key":"%s"}`, sig))
	if p.VerifyWebhookSignature(tampered, "", "") {
		t.Fatal("tampered amount accepted")
	}

	n, err := p.ParseWebhook(body)
	if err != nil {
		t.Fatalf("ParseWebhook: %v", err)
	}
	if !n.Success() || n.PaymentRef != "tx_1" {
		t.Errorf("notification = %+v", n)
	}
}

func TestMidtransStatusMapping(t *testing.T) {
	cases := map[[2]string]string{
		{"settlement", ""}:       StatusSuccess,
		{"capture", "accept"}:    StatusSuccess,
		{"capture", "challenge"}: StatusPending,
		{"pending", ""}:          StatusPending,
		{"expire", ""}:           StatusFailed,
		{"deny", ""}:             StatusFailed,
		{"refund", ""}:           StatusRefunded,
	}
	for in, want := range cases {
		if got := midtransStatus(in[0], in[1]); got != want {
			t.Errorf("midtransStatus(%q,%q) = %s, want %s", in[0], in[1], got, want)
		}
	}
}
