package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "fdp_backend/internals/helpers"
)

/* ===================== Enums (string) ===================== */

// Registrant payment status (host colleges and faculty share the domain).
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

/* ===================== Model ===================== */

type HostCollegeModel struct {
	HostCollegeID      uuid.UUID `gorm:"column:host_college_id;type:uuid;primaryKey" json:"host_college_id"`
	HostCollegeEventID uuid.UUID `gorm:"column:host_college_event_id;type:uuid;not null;index" json:"host_college_event_id"`

	HostCollegeName          string  `gorm:"column:host_college_name;type:varchar(255);not null" json:"host_college_name"`
	HostCollegeAddress       *string `gorm:"column:host_college_address;type:text" json:"host_college_address,omitempty"`
	HostCollegeWebsite       *string `gorm:"column:host_college_website;type:text" json:"host_college_website,omitempty"`
	HostCollegeContactPerson string  `gorm:"column:host_college_contact_person;type:varchar(255);not null" json:"host_college_contact_person"`
	HostCollegeEmail         string  `gorm:"column:host_college_email;type:varchar(255);not null" json:"host_college_email"`
	HostCollegePhone         string  `gorm:"column:host_college_phone;type:varchar(20);not null" json:"host_college_phone"`
	HostCollegeWhatsapp      *string `gorm:"column:host_college_whatsapp;type:varchar(20)" json:"host_college_whatsapp,omitempty"`
	HostCollegeLogoURL       *string `gorm:"column:host_college_logo_url;type:text" json:"host_college_logo_url,omitempty"`

	// Payment snapshot, written by the confirmation step only
	HostCollegePaymentStatus    string        `gorm:"column:host_college_payment_status;type:varchar(20);not null;default:'pending'" json:"host_college_payment_status"`
	HostCollegePaymentReference *string       `gorm:"column:host_college_payment_reference;type:varchar(255)" json:"host_college_payment_reference,omitempty"`
	HostCollegeAmountPaid       *helper.Money `gorm:"column:host_college_amount_paid;type:numeric(10,2)" json:"host_college_amount_paid,omitempty"`

	HostCollegeRegisteredAt time.Time `gorm:"column:host_college_registered_at;autoCreateTime" json:"host_college_registered_at"`
	HostCollegeUpdatedAt    time.Time `gorm:"column:host_college_updated_at;autoUpdateTime" json:"host_college_updated_at"`
}

func (HostCollegeModel) TableName() string {
	return "host_colleges"
}

func (m *HostCollegeModel) BeforeCreate(tx *gorm.DB) error {
	if m.HostCollegeID == uuid.Nil {
		m.HostCollegeID = uuid.New()
	}
	if m.HostCollegePaymentStatus == "" {
		m.HostCollegePaymentStatus = PaymentStatusPending
	}
	return nil
}
