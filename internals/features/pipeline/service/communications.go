package service

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	certService "fdp_backend/internals/features/certificates/service"
	commModel "fdp_backend/internals/features/communications/model"
	commService "fdp_backend/internals/features/communications/service"
	eventModel "fdp_backend/internals/features/events/model"
)

type BulkEmailInput struct {
	EventID    *uuid.UUID
	Recipients []commService.Recipient
	Subject    string
	Content    string
}

type BulkWhatsAppInput struct {
	EventID    *uuid.UUID
	Recipients []commService.Recipient
	Message    string
}

// BulkEmail sends one message to the given recipients, or to every paid
// registrant of the event when the list is empty.
func (p *Pipeline) BulkEmail(ctx context.Context, in BulkEmailInput) (*commService.BulkSummary, error) {
	recipients, err := p.resolveRecipients(ctx, in.EventID, in.Recipients)
	if err != nil {
		return nil, err
	}
	return p.notify.BulkEmail(ctx, in.EventID, recipients, in.Subject, in.Content, p.concurrency), nil
}

func (p *Pipeline) BulkWhatsApp(ctx context.Context, in BulkWhatsAppInput) (*commService.BulkSummary, error) {
	recipients, err := p.resolveRecipients(ctx, in.EventID, in.Recipients)
	if err != nil {
		return nil, err
	}
	return p.notify.BulkWhatsApp(ctx, in.EventID, recipients, in.Message, p.concurrency), nil
}

func (p *Pipeline) resolveRecipients(ctx context.Context, eventID *uuid.UUID, given []commService.Recipient) ([]commService.Recipient, error) {
	if eventID != nil {
		if _, err := p.loadEvent(ctx, *eventID); err != nil {
			return nil, err
		}
	}
	if len(given) > 0 || eventID == nil {
		return given, nil
	}
	contacts, err := p.paidContacts(ctx, *eventID)
	if err != nil {
		return nil, err
	}
	out := make([]commService.Recipient, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.recipient())
	}
	return out, nil
}

// paidContacts lists completed host colleges then completed faculty.
func (p *Pipeline) paidContacts(ctx context.Context, eventID uuid.UUID) ([]contact, error) {
	colleges, err := p.store.ListCompletedHostColleges(ctx, eventID)
	if err != nil {
		return nil, err
	}
	faculty, err := p.store.ListCompletedFaculty(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]contact, 0, len(colleges)+len(faculty))
	for i := range colleges {
		out = append(out, hostContact(&colleges[i]))
	}
	for i := range faculty {
		out = append(out, facultyContact(&faculty[i]))
	}
	return out, nil
}

type ReminderSummary struct {
	EventID uuid.UUID `json:"eventId"`
	Total   int       `json:"total"`
	Sent    int       `json:"sent"`
	Skipped int       `json:"skipped"`
	Failed  int       `json:"failed"`
}

// SendEventReminders reminds every paid registrant of the event. A registrant
// who already got a reminder for this event is skipped.
func (p *Pipeline) SendEventReminders(ctx context.Context, eventID uuid.UUID) (*ReminderSummary, error) {
	ev, err := p.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return p.remind(ctx, ev)
}

func (p *Pipeline) remind(ctx context.Context, ev *eventModel.EventModel) (*ReminderSummary, error) {
	contacts, err := p.paidContacts(ctx, ev.EventID)
	if err != nil {
		return nil, err
	}

	var sent, skipped, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, c := range contacts {
		g.Go(func() error {
			done, err := p.store.HasSentMessage(gctx, ev.EventID, c.ID, commModel.MessageTypeReminder)
			if err != nil {
				log.Printf("[REMINDER] lookup for %s failed: %v", c.ID, err)
				failed.Add(1)
				return nil
			}
			if done {
				skipped.Add(1)
				return nil
			}
			n := commService.Notice{
				Name:        c.Name,
				EventTitle:  ev.EventTitle,
				StartDate:   ev.EventStartDate.Format(certService.DateLayout),
				JoiningLink: deref(ev.EventJoiningLink),
			}
			emailOK, waOK := p.sendBoth(gctx, ev, c, commModel.MessageTypeReminder,
				commService.ReminderEmail(c.Email, n), commService.ReminderWhatsApp(c.Whatsapp, n))
			if emailOK || waOK {
				sent.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	sum := &ReminderSummary{
		EventID: ev.EventID,
		Total:   len(contacts),
		Sent:    int(sent.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}
	log.Printf("[REMINDER] %s: total=%d sent=%d skipped=%d failed=%d",
		ev.EventTitle, sum.Total, sum.Sent, sum.Skipped, sum.Failed)
	return sum, nil
}

// SendDueReminders covers every upcoming event starting within lead of now.
// It returns how many events were processed.
func (p *Pipeline) SendDueReminders(ctx context.Context, now time.Time, lead time.Duration) (int, error) {
	events, err := p.store.ListEventsStartingBetween(ctx, now, now.Add(lead))
	if err != nil {
		return 0, err
	}
	for i := range events {
		if _, err := p.remind(ctx, &events[i]); err != nil {
			log.Printf("[REMINDER] event %s failed: %v", events[i].EventID, err)
		}
	}
	return len(events), nil
}
