package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

const (
	MessageTypeConfirmation  = "confirmation"
	MessageTypePaymentFailed = "payment_failed"
	MessageTypeCertificate   = "certificate"
	MessageTypeReminder      = "reminder"
	MessageTypeBulk          = "bulk"
)

const (
	LogStatusSent   = "sent"
	LogStatusFailed = "failed"
)

// CommunicationLogModel is append-only: rows are inserted, never updated.
type CommunicationLogModel struct {
	LogID            uuid.UUID  `gorm:"column:log_id;type:uuid;primaryKey" json:"log_id"`
	LogEventID       *uuid.UUID `gorm:"column:log_event_id;type:uuid;index" json:"log_event_id,omitempty"`
	LogRecipientType *string    `gorm:"column:log_recipient_type;type:varchar(20)" json:"log_recipient_type,omitempty"`
	LogRecipientID   *uuid.UUID `gorm:"column:log_recipient_id;type:uuid;index" json:"log_recipient_id,omitempty"`

	LogChannel     string  `gorm:"column:log_channel;type:varchar(20);not null" json:"log_channel"`
	LogMessageType string  `gorm:"column:log_message_type;type:varchar(50);not null;index" json:"log_message_type"`
	LogRecipient   string  `gorm:"column:log_recipient;type:varchar(255);not null" json:"log_recipient"`
	LogSubject     *string `gorm:"column:log_subject;type:varchar(500)" json:"log_subject,omitempty"`
	LogContent     string  `gorm:"column:log_content;type:text;not null" json:"log_content"`

	LogStatus       string     `gorm:"column:log_status;type:varchar(20);not null" json:"log_status"`
	LogErrorMessage *string    `gorm:"column:log_error_message;type:text" json:"log_error_message,omitempty"`
	LogSentAt       *time.Time `gorm:"column:log_sent_at" json:"log_sent_at,omitempty"`

	LogCreatedAt time.Time `gorm:"column:log_created_at;autoCreateTime" json:"log_created_at"`
}

func (CommunicationLogModel) TableName() string {
	return "communication_logs"
}

func (m *CommunicationLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.LogID == uuid.Nil {
		m.LogID = uuid.New()
	}
	return nil
}
