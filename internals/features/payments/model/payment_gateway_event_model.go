// file: internals/features/payments/model/payment_gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
  payment_gateway_events = webhook / callback log
  - Many rows per payment (one per delivery)
  - Raw headers, payload, signature and processing status for replay/debug.
*/

const (
	GatewayEventStatusReceived  = "received"
	GatewayEventStatusProcessed = "processed"
	GatewayEventStatusIgnored   = "ignored"
	GatewayEventStatusFailed    = "failed"
)

type PaymentGatewayEventModel struct {
	GatewayEventID        uuid.UUID  `gorm:"column:gateway_event_id;type:uuid;primaryKey" json:"gateway_event_id"`
	GatewayEventPaymentID *uuid.UUID `gorm:"column:gateway_event_payment_id;type:uuid;index" json:"gateway_event_payment_id,omitempty"`

	// Provider & event identity
	GatewayEventProvider    string  `gorm:"column:gateway_event_provider;type:varchar(50);not null" json:"gateway_event_provider"`
	GatewayEventType        *string `gorm:"column:gateway_event_type;type:varchar(100)" json:"gateway_event_type,omitempty"`
	GatewayEventExternalID  *string `gorm:"column:gateway_event_external_id;type:varchar(100);index" json:"gateway_event_external_id,omitempty"`
	GatewayEventExternalRef *string `gorm:"column:gateway_event_external_ref;type:varchar(255)" json:"gateway_event_external_ref,omitempty"`

	// Raw data
	GatewayEventHeaders   datatypes.JSON `gorm:"column:gateway_event_headers" json:"gateway_event_headers,omitempty"`
	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload" json:"gateway_event_payload,omitempty"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature;type:text" json:"gateway_event_signature,omitempty"`

	// Internal processing status
	GatewayEventStatus string  `gorm:"column:gateway_event_status;type:varchar(20);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string `gorm:"column:gateway_event_error;type:text" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;autoCreateTime" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (PaymentGatewayEventModel) TableName() string {
	return "payment_gateway_events"
}

func (m *PaymentGatewayEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.GatewayEventID == uuid.Nil {
		m.GatewayEventID = uuid.New()
	}
	if m.GatewayEventStatus == "" {
		m.GatewayEventStatus = GatewayEventStatusReceived
	}
	return nil
}
