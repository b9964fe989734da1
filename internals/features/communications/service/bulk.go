package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fdp_backend/internals/features/communications/model"
)

const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

type Recipient struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Type     string     `json:"type,omitempty"`
	Name     string     `json:"name,omitempty"`
	Email    string     `json:"email,omitempty"`
	Whatsapp string     `json:"whatsapp,omitempty"`
}

type SendResult struct {
	RecipientID *uuid.UUID `json:"recipientId,omitempty"`
	Recipient   string     `json:"recipient"`
	Status      string     `json:"status"`
}

type BulkSummary struct {
	Total   int          `json:"total"`
	Sent    int          `json:"sent"`
	Failed  int          `json:"failed"`
	Skipped int          `json:"skipped"`
	Results []SendResult `json:"results"`
}

// BulkEmail sends the same message to every recipient with at most
// `concurrency` sends in flight. One failure never stops the batch.
func (d *Dispatcher) BulkEmail(ctx context.Context, eventID *uuid.UUID, recipients []Recipient, subject, html string, concurrency int) *BulkSummary {
	return d.fanOut(ctx, recipients, concurrency, func(ctx context.Context, r Recipient) (string, string) {
		if strings.TrimSpace(r.Email) == "" {
			return "", ResultSkipped
		}
		ok := d.SendEmail(ctx, EmailMessage{To: r.Email, Subject: subject, HTML: html}, Meta{
			EventID:       eventID,
			RecipientType: r.Type,
			RecipientID:   r.ID,
			MessageType:   model.MessageTypeBulk,
		})
		return r.Email, sentOrFailed(ok)
	})
}

// BulkWhatsApp skips recipients without a WhatsApp number.
func (d *Dispatcher) BulkWhatsApp(ctx context.Context, eventID *uuid.UUID, recipients []Recipient, message string, concurrency int) *BulkSummary {
	return d.fanOut(ctx, recipients, concurrency, func(ctx context.Context, r Recipient) (string, string) {
		if strings.TrimSpace(r.Whatsapp) == "" {
			return "", ResultSkipped
		}
		ok := d.SendWhatsApp(ctx, WhatsAppMessage{To: r.Whatsapp, Body: message}, Meta{
			EventID:       eventID,
			RecipientType: r.Type,
			RecipientID:   r.ID,
			MessageType:   model.MessageTypeBulk,
		})
		return r.Whatsapp, sentOrFailed(ok)
	})
}

func (d *Dispatcher) fanOut(ctx context.Context, recipients []Recipient, concurrency int, send func(context.Context, Recipient) (string, string)) *BulkSummary {
	results := make([]SendResult, len(recipients))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, r := range recipients {
		g.Go(func() error {
			addr, status := send(gctx, r)
			results[i] = SendResult{RecipientID: r.ID, Recipient: addr, Status: status}
			return nil
		})
	}
	_ = g.Wait()

	sum := &BulkSummary{Total: len(recipients), Results: results}
	for _, r := range results {
		switch r.Status {
		case ResultSent:
			sum.Sent++
		case ResultFailed:
			sum.Failed++
		case ResultSkipped:
			sum.Skipped++
		}
	}
	return sum
}

func sentOrFailed(ok bool) string {
	if ok {
		return ResultSent
	}
	return ResultFailed
}
