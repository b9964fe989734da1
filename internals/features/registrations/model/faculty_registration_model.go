package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "fdp_backend/internals/helpers"
)

const (
	RegistrationTypeIndividual = "individual"
	RegistrationTypeViaHost    = "via_host"
)

type FacultyRegistrationModel struct {
	FacultyID            uuid.UUID  `gorm:"column:faculty_id;type:uuid;primaryKey" json:"faculty_id"`
	FacultyEventID       uuid.UUID  `gorm:"column:faculty_event_id;type:uuid;not null;index" json:"faculty_event_id"`
	FacultyHostCollegeID *uuid.UUID `gorm:"column:faculty_host_college_id;type:uuid;index" json:"faculty_host_college_id,omitempty"`

	FacultyRegistrationType string  `gorm:"column:faculty_registration_type;type:varchar(20);not null;default:'individual'" json:"faculty_registration_type"`
	FacultyName             string  `gorm:"column:faculty_name;type:varchar(255);not null" json:"faculty_name"`
	FacultyEmail            string  `gorm:"column:faculty_email;type:varchar(255);not null" json:"faculty_email"`
	FacultyPhone            string  `gorm:"column:faculty_phone;type:varchar(20);not null" json:"faculty_phone"`
	FacultyWhatsapp         *string `gorm:"column:faculty_whatsapp;type:varchar(20)" json:"faculty_whatsapp,omitempty"`
	FacultyDesignation      *string `gorm:"column:faculty_designation;type:varchar(255)" json:"faculty_designation,omitempty"`
	FacultyDepartment       *string `gorm:"column:faculty_department;type:varchar(255)" json:"faculty_department,omitempty"`
	FacultyInstitution      *string `gorm:"column:faculty_institution;type:varchar(255)" json:"faculty_institution,omitempty"`

	FacultyPaymentStatus    string        `gorm:"column:faculty_payment_status;type:varchar(20);not null;default:'pending';index" json:"faculty_payment_status"`
	FacultyPaymentReference *string       `gorm:"column:faculty_payment_reference;type:varchar(255)" json:"faculty_payment_reference,omitempty"`
	FacultyAmountPaid       *helper.Money `gorm:"column:faculty_amount_paid;type:numeric(10,2)" json:"faculty_amount_paid,omitempty"`

	// Post-payment flags; both only ever move false → true
	FacultyFeedbackSubmitted    bool    `gorm:"column:faculty_feedback_submitted;not null;default:false" json:"faculty_feedback_submitted"`
	FacultyCertificateGenerated bool    `gorm:"column:faculty_certificate_generated;not null;default:false" json:"faculty_certificate_generated"`
	FacultyCertificateURL       *string `gorm:"column:faculty_certificate_url;type:text" json:"faculty_certificate_url,omitempty"`

	FacultyRegisteredAt time.Time `gorm:"column:faculty_registered_at;autoCreateTime" json:"faculty_registered_at"`
	FacultyUpdatedAt    time.Time `gorm:"column:faculty_updated_at;autoUpdateTime" json:"faculty_updated_at"`
}

func (FacultyRegistrationModel) TableName() string {
	return "faculty_registrations"
}

func (m *FacultyRegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.FacultyID == uuid.Nil {
		m.FacultyID = uuid.New()
	}
	if m.FacultyPaymentStatus == "" {
		m.FacultyPaymentStatus = PaymentStatusPending
	}
	if m.FacultyRegistrationType == "" {
		m.FacultyRegistrationType = RegistrationTypeIndividual
	}
	return nil
}
