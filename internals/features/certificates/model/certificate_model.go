package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateModel is a denormalized, write-once snapshot of what was printed.
type CertificateModel struct {
	CertificateID uuid.UUID `gorm:"column:certificate_id;type:uuid;primaryKey" json:"certificate_id"`

	// CERT-<millis>-<FIRST8>
	CertificateNumber string `gorm:"column:certificate_number;type:varchar(64);not null;uniqueIndex" json:"certificate_number"`

	// at most one certificate per faculty registration
	CertificateFacultyID uuid.UUID `gorm:"column:certificate_faculty_id;type:uuid;not null;uniqueIndex" json:"certificate_faculty_id"`
	CertificateEventID   uuid.UUID `gorm:"column:certificate_event_id;type:uuid;not null;index" json:"certificate_event_id"`

	CertificateURL             string     `gorm:"column:certificate_url;type:text;not null" json:"certificate_url"`
	CertificateParticipantName string     `gorm:"column:certificate_participant_name;type:varchar(255);not null" json:"certificate_participant_name"`
	CertificateCollegeName     *string    `gorm:"column:certificate_college_name;type:varchar(255)" json:"certificate_college_name,omitempty"`
	CertificateEventTitle      string     `gorm:"column:certificate_event_title;type:varchar(255);not null" json:"certificate_event_title"`
	CertificateEventDates      string     `gorm:"column:certificate_event_dates;type:varchar(100);not null" json:"certificate_event_dates"`
	CertificateTemplateID      *uuid.UUID `gorm:"column:certificate_template_id;type:uuid" json:"certificate_template_id,omitempty"`

	CertificateIssuedAt time.Time `gorm:"column:certificate_issued_at;not null" json:"certificate_issued_at"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}

func (m *CertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	return nil
}
