package dto

import commService "fdp_backend/internals/features/communications/service"

type RecipientRequest struct {
	Name     string `json:"name" validate:"omitempty,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Whatsapp string `json:"whatsapp" validate:"omitempty,phone"`
}

// An empty recipient list means every paid registrant of fdp_id.
type BulkEmailRequest struct {
	FDPID      *string            `json:"fdp_id" validate:"omitempty,uuid"`
	Recipients []RecipientRequest `json:"recipients" validate:"omitempty,dive"`
	Subject    string             `json:"subject" validate:"required,max=500"`
	Content    string             `json:"content" validate:"required"`
}

type BulkWhatsAppRequest struct {
	FDPID      *string            `json:"fdp_id" validate:"omitempty,uuid"`
	Recipients []RecipientRequest `json:"recipients" validate:"omitempty,dive"`
	Message    string             `json:"message" validate:"required,max=4096"`
}

func ToRecipients(in []RecipientRequest) []commService.Recipient {
	out := make([]commService.Recipient, 0, len(in))
	for _, r := range in {
		out = append(out, commService.Recipient{Name: r.Name, Email: r.Email, Whatsapp: r.Whatsapp})
	}
	return out
}
