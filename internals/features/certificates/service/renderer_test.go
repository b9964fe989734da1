package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"fdp_backend/internals/helpers/blob"
)

type fakeEngine struct {
	html string
	err  error
}

func (f *fakeEngine) PrintPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func TestCertificateNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	got := NewCertificateNumber(now, "abcdef1234567890")
	if !regexp.MustCompile(`^CERT-\d+-ABCDEF12$`).MatchString(got) {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "1773306000000") {
		t.Errorf("expected unix millis in %q", got)
	}
}

func TestFillTemplateReplacesEveryToken(t *testing.T) {
	tpl := "{{participant_name}}|{{fdp_title}}|{{start_date}}|{{end_date}}|{{fdp_dates}}|" +
		"{{certificate_id}}|{{issue_date}}|{{college_name}}|{{organiser_logo}}|{{college_logo}}|{{signature_image}}"
	d := CertificateData{
		ParticipantName: "Jane Doe",
		FDPTitle:        "Applied ML",
		StartDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		CertificateID:   "CERT-1-ABCDEF12",
		IssueDate:       time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	got := FillTemplate(tpl, d)
	want := "Jane Doe|Applied ML|Mar 10, 2026|Mar 14, 2026|Mar 10, 2026 - Mar 14, 2026|CERT-1-ABCDEF12|Mar 20, 2026||||"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	if strings.Contains(got, "{{") {
		t.Error("unresolved placeholder left in output")
	}
}

func TestRenderStoresUnderCertificateID(t *testing.T) {
	eng := &fakeEngine{}
	r := NewRenderer(eng, blob.NewLocalStore(t.TempDir(), "/uploads"))

	url, err := r.Render(context.Background(), "", CertificateData{ParticipantName: "Jane Doe", CertificateID: "CERT-5-ABCDEF12"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if url != "/uploads/certificates/CERT-5-ABCDEF12.pdf" {
		t.Errorf("url = %q", url)
	}
	if !strings.Contains(eng.html, "Jane Doe") || strings.Contains(eng.html, "{{") {
		t.Error("default template was not filled")
	}
}

func TestRenderPropagatesEngineFailure(t *testing.T) {
	r := NewRenderer(&fakeEngine{err: errors.New("chrome crashed")}, blob.NewLocalStore(t.TempDir(), "/uploads"))
	if _, err := r.Render(context.Background(), "x", CertificateData{CertificateID: "CERT-1-A"}); err == nil {
		t.Fatal("expected error")
	}
}
