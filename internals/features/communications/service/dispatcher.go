package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"fdp_backend/internals/features/communications/model"
	"fdp_backend/internals/metrics"
)

type LogStore interface {
	CreateCommunicationLog(ctx context.Context, m *model.CommunicationLogModel) error
}

// Meta ties a send attempt to the event and registrant it concerns.
type Meta struct {
	EventID       *uuid.UUID
	RecipientType string
	RecipientID   *uuid.UUID
	MessageType   string
}

// Dispatcher sends notifications best-effort. Transport errors are logged,
// recorded as a failed CommunicationLog row and reported as false; they never
// reach the caller as errors.
type Dispatcher struct {
	email    EmailSender
	whatsapp WhatsAppSender
	logs     LogStore
	now      func() time.Time
}

func NewDispatcher(email EmailSender, whatsapp WhatsAppSender, logs LogStore) *Dispatcher {
	return &Dispatcher{email: email, whatsapp: whatsapp, logs: logs, now: time.Now}
}

func (d *Dispatcher) SendEmail(ctx context.Context, msg EmailMessage, meta Meta) bool {
	err := d.email.SendEmail(ctx, msg)
	if err != nil {
		log.Printf("[NOTIFY] ❌ email to %s failed: %v", msg.To, err)
	} else {
		log.Printf("[NOTIFY] ✅ email sent to %s (%s)", msg.To, meta.MessageType)
	}
	subject := msg.Subject
	d.record(ctx, model.ChannelEmail, msg.To, &subject, msg.HTML, meta, err)
	return err == nil
}

func (d *Dispatcher) SendWhatsApp(ctx context.Context, msg WhatsAppMessage, meta Meta) bool {
	err := d.whatsapp.SendWhatsApp(ctx, msg)
	if err != nil {
		log.Printf("[NOTIFY] ❌ whatsapp to %s failed: %v", msg.To, err)
	} else {
		log.Printf("[NOTIFY] ✅ whatsapp sent to %s (%s)", msg.To, meta.MessageType)
	}
	content := msg.Body
	if msg.TemplateName != "" {
		content = msg.TemplateName + ": " + strings.Join(msg.TemplateParams, " | ")
	}
	d.record(ctx, model.ChannelWhatsApp, msg.To, nil, content, meta, err)
	return err == nil
}

func (d *Dispatcher) record(ctx context.Context, channel, recipient string, subject *string, content string, meta Meta, sendErr error) {
	status := model.LogStatusSent
	var errMsg *string
	var sentAt *time.Time
	if sendErr != nil {
		status = model.LogStatusFailed
		s := sendErr.Error()
		errMsg = &s
	} else {
		now := d.now()
		sentAt = &now
	}
	metrics.Notifications.WithLabelValues(channel, status).Inc()

	if d.logs == nil {
		return
	}
	var recipientType *string
	if meta.RecipientType != "" {
		rt := meta.RecipientType
		recipientType = &rt
	}
	messageType := meta.MessageType
	if messageType == "" {
		messageType = model.MessageTypeBulk
	}
	row := &model.CommunicationLogModel{
		LogEventID:       meta.EventID,
		LogRecipientType: recipientType,
		LogRecipientID:   meta.RecipientID,
		LogChannel:       channel,
		LogMessageType:   messageType,
		LogRecipient:     recipient,
		LogSubject:       subject,
		LogContent:       content,
		LogStatus:        status,
		LogErrorMessage:  errMsg,
		LogSentAt:        sentAt,
	}
	if err := d.logs.CreateCommunicationLog(ctx, row); err != nil {
		log.Printf("[NOTIFY] communication log write failed: %v", err)
	}
}
