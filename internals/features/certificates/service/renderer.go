package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fdp_backend/internals/helpers/blob"
)

var ErrEmptyPDF = errors.New("renderer produced an empty pdf")

// Renderer fills a template, prints it and stores the PDF under certificates/<id>.pdf.
type Renderer struct {
	engine PDFEngine
	blobs  blob.Store
}

func NewRenderer(engine PDFEngine, blobs blob.Store) *Renderer {
	return &Renderer{engine: engine, blobs: blobs}
}

// Render returns the URL of the stored PDF.
func (r *Renderer) Render(ctx context.Context, html string, d CertificateData) (string, error) {
	if html == "" {
		html = DefaultTemplateHTML
	}
	if d.CertificateID == "" {
		return "", errors.New("certificate id is required")
	}

	pdf, err := r.engine.PrintPDF(ctx, FillTemplate(html, d))
	if err != nil {
		return "", err
	}
	if len(pdf) == 0 {
		return "", ErrEmptyPDF
	}

	url, err := r.blobs.Put(ctx, fmt.Sprintf("certificates/%s.pdf", d.CertificateID), "application/pdf", pdf)
	if err != nil {
		return "", fmt.Errorf("store certificate: %w", err)
	}
	log.Printf("[CERT] rendered %s (%d bytes) -> %s", d.CertificateID, len(pdf), url)
	return url, nil
}
