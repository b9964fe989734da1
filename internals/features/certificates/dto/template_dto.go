package dto

import "fdp_backend/internals/features/certificates/model"

type CreateTemplateRequest struct {
	Name           string  `json:"template_name" validate:"required,max=255"`
	HTML           string  `json:"template_html" validate:"required"`
	OrganiserLogo  *string `json:"template_organiser_logo" validate:"omitempty,url"`
	SignatureImage *string `json:"template_signature_image" validate:"omitempty,url"`
	IsDefault      bool    `json:"template_is_default"`
}

func (r *CreateTemplateRequest) ToModel() *model.CertificateTemplateModel {
	return &model.CertificateTemplateModel{
		TemplateName:           r.Name,
		TemplateHTML:           r.HTML,
		TemplateOrganiserLogo:  r.OrganiserLogo,
		TemplateSignatureImage: r.SignatureImage,
		TemplateIsDefault:      r.IsDefault,
	}
}

// PreviewTemplateRequest fills a template with sample data. An empty html
// previews the stored default.
type PreviewTemplateRequest struct {
	HTML            string `json:"template_html"`
	ParticipantName string `json:"participant_name" validate:"omitempty,max=255"`
}
