package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"fdp_backend/internals/configs"
)

var ErrNotConfigured = errors.New("transport not configured")

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
	Path        string
}

type EmailMessage struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

type SMTPEmailSender struct {
	host   string
	port   int
	user   string
	pass   string
	from   string
	useTLS bool
}

func NewSMTPEmailSender(cfg configs.SMTP) *SMTPEmailSender {
	return &SMTPEmailSender{
		host:   cfg.Host,
		port:   cfg.Port,
		user:   cfg.User,
		pass:   cfg.Password,
		from:   cfg.From,
		useTLS: cfg.UseTLS,
	}
}

// NewEmailSender returns the SMTP sender, or a sender that always fails when
// SMTP is not configured so every attempt still lands in the log as failed.
func NewEmailSender(cfg configs.SMTP) EmailSender {
	if !cfg.Enabled() {
		return NoopSender{}
	}
	return NewSMTPEmailSender(cfg)
}

func (s *SMTPEmailSender) SendEmail(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)

	e := email.NewEmail()
	e.From = s.from
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)

	for _, a := range msg.Attachments {
		var err error
		if a.Path != "" {
			_, err = e.AttachFile(a.Path)
		} else {
			_, err = e.Attach(bytes.NewReader(a.Content), a.Filename, a.ContentType)
		}
		if err != nil {
			return fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}

	// port 465 style implicit TLS; otherwise net/smtp upgrades with STARTTLS
	if s.useTLS {
		return e.SendWithTLS(addr, auth, &tls.Config{ServerName: s.host})
	}
	return e.Send(addr, auth)
}
