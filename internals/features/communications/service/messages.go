package service

import (
	"fmt"
	"html"
	"strings"
)

// Notice carries everything the message builders print. Empty optional
// links are left out of the rendered text.
type Notice struct {
	Name              string
	EventTitle        string
	PaymentID         string
	Amount            string
	JoiningLink       string
	WhatsAppGroupLink string
	CertificateURL    string
	CertificateID     string
	StartDate         string
	HostCollege       bool
}

const signature = "Aashvee FDP Team"

func ConfirmationEmail(to string, n Notice) EmailMessage {
	what := "Your registration"
	if n.HostCollege {
		what = "Your host college registration"
	}
	var b strings.Builder
	b.WriteString("<h2>Registration Successful!</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", esc(n.Name))
	fmt.Fprintf(&b, "<p>%s for <strong>%s</strong> has been confirmed.</p>", what, esc(n.EventTitle))
	fmt.Fprintf(&b, "<p><strong>Payment ID:</strong> %s</p>", esc(n.PaymentID))
	fmt.Fprintf(&b, "<p><strong>Amount Paid:</strong> ₹%s</p>", esc(n.Amount))
	if n.WhatsAppGroupLink != "" {
		fmt.Fprintf(&b, `<p><strong>WhatsApp Group:</strong> <a href="%s">Join Here</a></p>`, esc(n.WhatsAppGroupLink))
	}
	if n.JoiningLink != "" {
		fmt.Fprintf(&b, `<p><strong>FDP Joining Link:</strong> <a href="%s">Click Here</a></p>`, esc(n.JoiningLink))
	}
	fmt.Fprintf(&b, "<p>Best regards,<br>%s</p>", signature)

	return EmailMessage{
		To:      to,
		Subject: "✅ Registration Confirmed - " + n.EventTitle,
		HTML:    b.String(),
	}
}

func ConfirmationWhatsApp(to string, n Notice) WhatsAppMessage {
	what := "Your registration"
	if n.HostCollege {
		what = "Your host college registration"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Registration Confirmed!\n\n%s for %s is confirmed.\n\nPayment ID: %s\nAmount: ₹%s",
		what, n.EventTitle, n.PaymentID, n.Amount)
	if n.WhatsAppGroupLink != "" {
		fmt.Fprintf(&b, "\n\nWhatsApp Group: %s", n.WhatsAppGroupLink)
	}
	if n.JoiningLink != "" {
		fmt.Fprintf(&b, "\n\nFDP Link: %s", n.JoiningLink)
	}
	return WhatsAppMessage{To: to, Body: b.String()}
}

func PaymentFailedEmail(to string, n Notice) EmailMessage {
	return EmailMessage{
		To:      to,
		Subject: "❌ Payment Failed - " + n.EventTitle,
		HTML: fmt.Sprintf(
			"<h2>Payment Failed</h2><p>Dear %s,</p><p>Unfortunately, your payment for <strong>%s</strong> could not be processed.</p><p>Please try again or contact support.</p>",
			esc(n.Name), esc(n.EventTitle)),
	}
}

func PaymentFailedWhatsApp(to string, n Notice) WhatsAppMessage {
	return WhatsAppMessage{
		To:   to,
		Body: fmt.Sprintf("❌ Payment Failed\n\nYour payment for %s could not be processed. Please try again.", n.EventTitle),
	}
}

func CertificateEmail(to string, n Notice) EmailMessage {
	var b strings.Builder
	b.WriteString("<h2>🎓 Certificate Generated</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", esc(n.Name))
	fmt.Fprintf(&b, "<p>Congratulations! Your certificate for <strong>%s</strong> has been generated.</p>", esc(n.EventTitle))
	if n.CertificateID != "" {
		fmt.Fprintf(&b, "<p>Certificate ID: %s</p>", esc(n.CertificateID))
	}
	fmt.Fprintf(&b, `<p><a href="%s">Download Certificate</a></p>`, esc(n.CertificateURL))
	fmt.Fprintf(&b, "<p>Best regards,<br>%s</p>", signature)
	return EmailMessage{To: to, Subject: "Certificate - " + n.EventTitle, HTML: b.String()}
}

func CertificateWhatsApp(to string, n Notice) WhatsAppMessage {
	return WhatsAppMessage{
		To: to,
		Body: fmt.Sprintf("🎓 *Certificate Generated*\n\nDear %s,\n\nCongratulations! Your certificate for *%s* is ready.\n\n📥 Download: %s\n\n- %s",
			n.Name, n.EventTitle, n.CertificateURL, signature),
	}
}

func ReminderEmail(to string, n Notice) EmailMessage {
	var b strings.Builder
	b.WriteString("<h2>📅 FDP Reminder</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", esc(n.Name))
	fmt.Fprintf(&b, "<p>This is a reminder that the FDP <strong>%s</strong> starts on <strong>%s</strong>.</p>", esc(n.EventTitle), esc(n.StartDate))
	if n.JoiningLink != "" {
		fmt.Fprintf(&b, `<p>Joining Link: <a href="%s">%s</a></p>`, esc(n.JoiningLink), esc(n.JoiningLink))
	}
	fmt.Fprintf(&b, "<p>Please ensure you join on time.</p><p>Best regards,<br>%s</p>", signature)
	return EmailMessage{To: to, Subject: "Reminder: " + n.EventTitle + " - Starting Soon", HTML: b.String()}
}

func ReminderWhatsApp(to string, n Notice) WhatsAppMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 *FDP Reminder*\n\nDear %s,\n\nThe FDP *%s* starts on *%s*.", n.Name, n.EventTitle, n.StartDate)
	if n.JoiningLink != "" {
		fmt.Fprintf(&b, "\n\n🔗 Join: %s", n.JoiningLink)
	}
	fmt.Fprintf(&b, "\n\nPlease join on time!\n\n- %s", signature)
	return WhatsAppMessage{To: to, Body: b.String()}
}

func esc(s string) string { return html.EscapeString(s) }
