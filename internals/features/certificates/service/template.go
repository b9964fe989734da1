package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout renders event and issue dates, e.g. "Mar 10, 2026".
const DateLayout = "Jan 02, 2006"

// CertificateData carries every placeholder a template may use. Unset
// optional fields render as empty strings.
type CertificateData struct {
	ParticipantName string
	FDPTitle        string
	StartDate       time.Time
	EndDate         time.Time
	CertificateID   string
	IssueDate       time.Time
	CollegeName     string
	OrganiserLogo   string
	CollegeLogo     string
	SignatureImage  string
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// EventDates is the "<start> - <end>" string printed and snapshotted on certificates.
func EventDates(start, end time.Time) string {
	return formatDate(start) + " - " + formatDate(end)
}

// FillTemplate substitutes every {{token}} in html.
func FillTemplate(html string, d CertificateData) string {
	r := strings.NewReplacer(
		"{{participant_name}}", d.ParticipantName,
		"{{fdp_title}}", d.FDPTitle,
		"{{start_date}}", formatDate(d.StartDate),
		"{{end_date}}", formatDate(d.EndDate),
		"{{fdp_dates}}", EventDates(d.StartDate, d.EndDate),
		"{{certificate_id}}", d.CertificateID,
		"{{issue_date}}", formatDate(d.IssueDate),
		"{{college_name}}", d.CollegeName,
		"{{organiser_logo}}", d.OrganiserLogo,
		"{{college_logo}}", d.CollegeLogo,
		"{{signature_image}}", d.SignatureImage,
	)
	return r.Replace(html)
}

// NewCertificateNumber returns CERT-<unix millis>-<first 8 chars of the id, upper-cased>.
func NewCertificateNumber(now time.Time, entityID string) string {
	short := strings.ReplaceAll(entityID, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("CERT-%d-%s", now.UnixMilli(), strings.ToUpper(short))
}

// CertificateNumberFor is NewCertificateNumber over a registration id.
func CertificateNumberFor(now time.Time, id uuid.UUID) string {
	return NewCertificateNumber(now, id.String())
}
