package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateTemplateModel struct {
	TemplateID   uuid.UUID `gorm:"column:template_id;type:uuid;primaryKey" json:"template_id"`
	TemplateName string    `gorm:"column:template_name;type:varchar(255);not null" json:"template_name"`
	TemplateHTML string    `gorm:"column:template_html;type:text;not null" json:"template_html"`

	TemplateOrganiserLogo  *string `gorm:"column:template_organiser_logo;type:text" json:"template_organiser_logo,omitempty"`
	TemplateSignatureImage *string `gorm:"column:template_signature_image;type:text" json:"template_signature_image,omitempty"`

	// at most one row has this set
	TemplateIsDefault bool `gorm:"column:template_is_default;not null;default:false" json:"template_is_default"`

	TemplateCreatedAt time.Time `gorm:"column:template_created_at;autoCreateTime" json:"template_created_at"`
	TemplateUpdatedAt time.Time `gorm:"column:template_updated_at;autoUpdateTime" json:"template_updated_at"`
}

func (CertificateTemplateModel) TableName() string {
	return "certificate_templates"
}

func (m *CertificateTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.TemplateID == uuid.Nil {
		m.TemplateID = uuid.New()
	}
	return nil
}
