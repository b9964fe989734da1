package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fdp_backend/internals/broker"
	certModel "fdp_backend/internals/features/certificates/model"
	certService "fdp_backend/internals/features/certificates/service"
	commModel "fdp_backend/internals/features/communications/model"
	commService "fdp_backend/internals/features/communications/service"
	eventModel "fdp_backend/internals/features/events/model"
	regModel "fdp_backend/internals/features/registrations/model"
	"fdp_backend/internals/metrics"
	"fdp_backend/internals/store"
)

const (
	CertGenerated     = "generated"
	CertAlreadyExists = "already_exists"
	CertError         = "error"
	// CertSkipped means the registration is not paid yet.
	CertSkipped = "skipped"
)

type FeedbackResult struct {
	Registration      *regModel.FacultyRegistrationModel `json:"registration"`
	Certificate       *certModel.CertificateModel        `json:"certificate,omitempty"`
	CertificateStatus string                             `json:"certificateStatus"`
}

// SubmitFeedback records feedback and, for paid registrations without a
// certificate, issues one. Repeating it never issues a second certificate.
// A render failure is reported in the result; the feedback flag stays set.
func (p *Pipeline) SubmitFeedback(ctx context.Context, facultyID uuid.UUID) (*FeedbackResult, error) {
	f, err := p.store.GetFaculty(ctx, facultyID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFacultyNotFound
	}
	if err := p.store.MarkFeedbackSubmitted(ctx, facultyID); err != nil {
		return nil, err
	}

	res := &FeedbackResult{CertificateStatus: CertSkipped}
	if f.FacultyPaymentStatus == regModel.PaymentStatusCompleted {
		ev, err := p.loadEvent(ctx, f.FacultyEventID)
		if err != nil {
			return nil, err
		}
		cert, status, err := p.issueCertificate(ctx, f, ev)
		if err != nil {
			log.Printf("[CERT] ❌ feedback issuance for %s failed: %v", facultyID, err)
		}
		res.Certificate, res.CertificateStatus = cert, status
	}

	if res.Registration, err = p.store.GetFaculty(ctx, facultyID); err != nil {
		return nil, err
	}
	return res, nil
}

// IssueCertificate is the admin single generation. Without force the
// registration must be paid; force skips that check. An existing
// certificate is returned as is.
func (p *Pipeline) IssueCertificate(ctx context.Context, facultyID uuid.UUID, force bool) (*certModel.CertificateModel, string, error) {
	f, err := p.store.GetFaculty(ctx, facultyID)
	if err != nil {
		return nil, "", err
	}
	if f == nil {
		return nil, "", ErrFacultyNotFound
	}
	if !force && f.FacultyPaymentStatus != regModel.PaymentStatusCompleted {
		return nil, "", ErrNotEligible
	}
	ev, err := p.loadEvent(ctx, f.FacultyEventID)
	if err != nil {
		return nil, "", err
	}
	cert, status, err := p.issueCertificate(ctx, f, ev)
	if err != nil {
		return nil, status, fmt.Errorf("%w: %v", ErrCertificateRender, err)
	}
	return cert, status, nil
}

type CertificateResult struct {
	FacultyID     uuid.UUID `json:"facultyId"`
	Status        string    `json:"status"`
	CertificateID string    `json:"certificateId,omitempty"`
	Error         string    `json:"error,omitempty"`
}

type BulkCertificateSummary struct {
	Total         int                 `json:"total"`
	Generated     int                 `json:"generated"`
	AlreadyExists int                 `json:"alreadyExists"`
	Errors        int                 `json:"errors"`
	Results       []CertificateResult `json:"results"`
}

// BulkGenerateCertificates issues certificates for every paid registration of
// the event with feedback in. Each registration gets its own result; one
// failure does not stop the others.
func (p *Pipeline) BulkGenerateCertificates(ctx context.Context, eventID uuid.UUID) (*BulkCertificateSummary, error) {
	ev, err := p.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	candidates, err := p.store.ListCertificateCandidates(ctx, eventID)
	if err != nil {
		return nil, err
	}

	results := make([]CertificateResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i := range candidates {
		f := &candidates[i]
		g.Go(func() error {
			r := CertificateResult{FacultyID: f.FacultyID}
			cert, status, err := p.issueCertificate(gctx, f, ev)
			r.Status = status
			if cert != nil {
				r.CertificateID = cert.CertificateNumber
			}
			if err != nil {
				log.Printf("[CERT] ❌ bulk issuance for %s failed: %v", f.FacultyID, err)
				r.Error = "Generation failed"
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()

	sum := &BulkCertificateSummary{Total: len(candidates), Results: results}
	for _, r := range results {
		switch r.Status {
		case CertGenerated:
			sum.Generated++
		case CertAlreadyExists:
			sum.AlreadyExists++
		default:
			sum.Errors++
		}
	}
	log.Printf("[CERT] bulk %s: total=%d generated=%d existing=%d errors=%d",
		eventID, sum.Total, sum.Generated, sum.AlreadyExists, sum.Errors)
	return sum, nil
}

// issueCertificate renders, stores and announces one certificate. It returns
// the existing row with CertAlreadyExists when one is already on file.
func (p *Pipeline) issueCertificate(ctx context.Context, f *regModel.FacultyRegistrationModel, ev *eventModel.EventModel) (*certModel.CertificateModel, string, error) {
	existing, err := p.store.GetCertificateByFaculty(ctx, f.FacultyID)
	if err != nil {
		return nil, CertError, err
	}
	if existing != nil {
		if !f.FacultyCertificateGenerated {
			if err := p.store.MarkCertificateIssued(ctx, f.FacultyID, existing.CertificateURL); err != nil {
				log.Printf("[CERT] ⚠️ could not flag faculty %s for existing certificate %s: %v",
					f.FacultyID, existing.CertificateNumber, err)
			}
		}
		metrics.Certificates.WithLabelValues(CertAlreadyExists).Inc()
		return existing, CertAlreadyExists, nil
	}

	tpl, err := p.store.GetDefaultTemplate(ctx)
	if err != nil {
		return nil, CertError, err
	}
	now := p.now()
	html := certService.DefaultTemplateHTML
	var templateID *uuid.UUID
	data := certService.CertificateData{
		ParticipantName: f.FacultyName,
		FDPTitle:        ev.EventTitle,
		StartDate:       ev.EventStartDate,
		EndDate:         ev.EventEndDate,
		IssueDate:       now,
		CertificateID:   certService.CertificateNumberFor(now, f.FacultyID),
		CollegeName:     deref(f.FacultyInstitution),
	}
	if tpl != nil {
		html = tpl.TemplateHTML
		id := tpl.TemplateID
		templateID = &id
		data.OrganiserLogo = deref(tpl.TemplateOrganiserLogo)
		data.SignatureImage = deref(tpl.TemplateSignatureImage)
	}
	if f.FacultyHostCollegeID != nil {
		if hc, err := p.store.GetHostCollege(ctx, *f.FacultyHostCollegeID); err == nil && hc != nil {
			data.CollegeName = hc.HostCollegeName
			data.CollegeLogo = deref(hc.HostCollegeLogoURL)
		}
	}

	url, err := p.renderer.Render(ctx, html, data)
	if err != nil {
		metrics.Certificates.WithLabelValues(CertError).Inc()
		return nil, CertError, err
	}

	cert := &certModel.CertificateModel{
		CertificateNumber:          data.CertificateID,
		CertificateFacultyID:       f.FacultyID,
		CertificateEventID:         ev.EventID,
		CertificateURL:             url,
		CertificateParticipantName: f.FacultyName,
		CertificateEventTitle:      ev.EventTitle,
		CertificateEventDates:      certService.EventDates(ev.EventStartDate, ev.EventEndDate),
		CertificateTemplateID:      templateID,
		CertificateIssuedAt:        data.IssueDate,
	}
	if data.CollegeName != "" {
		name := data.CollegeName
		cert.CertificateCollegeName = &name
	}
	if err := p.store.CreateCertificate(ctx, cert); err != nil {
		if errors.Is(err, store.ErrCertificateExists) {
			// lost a race with a concurrent issuance
			winner, gerr := p.store.GetCertificateByFaculty(ctx, f.FacultyID)
			if gerr == nil && winner != nil {
				return winner, CertAlreadyExists, nil
			}
		}
		metrics.Certificates.WithLabelValues(CertError).Inc()
		return nil, CertError, err
	}
	if err := p.store.MarkCertificateIssued(ctx, f.FacultyID, url); err != nil {
		return cert, CertGenerated, err
	}
	metrics.Certificates.WithLabelValues(CertGenerated).Inc()
	p.publish(ctx, broker.KeyCertificateIssued, map[string]any{
		"certificateId": cert.CertificateNumber,
		"facultyId":     f.FacultyID,
		"eventId":       ev.EventID,
		"url":           url,
	})

	c := facultyContact(f)
	n := commService.Notice{
		Name:           f.FacultyName,
		EventTitle:     ev.EventTitle,
		CertificateURL: url,
		CertificateID:  cert.CertificateNumber,
	}
	p.sendBoth(ctx, ev, c, commModel.MessageTypeCertificate,
		commService.CertificateEmail(c.Email, n), commService.CertificateWhatsApp(c.Whatsapp, n))
	return cert, CertGenerated, nil
}
