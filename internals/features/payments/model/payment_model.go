package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	helper "fdp_backend/internals/helpers"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatusCreated  = "created"
	PaymentStatusPending  = "pending"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	GatewayCashfree = "cashfree"
	GatewayMidtrans = "midtrans"
)

/* ===================== Model ===================== */

// PaymentModel is one row per attempted transaction.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	// Gateway order id (ORDER_<millis>_<rand>)
	PaymentOrderID   string  `gorm:"column:payment_order_id;type:varchar(100);not null;uniqueIndex" json:"payment_order_id"`
	PaymentReference *string `gorm:"column:payment_reference;type:varchar(255)" json:"payment_reference,omitempty"`

	// Paying entity (host_college | faculty) + owning event
	PaymentEntityType string    `gorm:"column:payment_entity_type;type:varchar(20);not null" json:"payment_entity_type"`
	PaymentEntityID   uuid.UUID `gorm:"column:payment_entity_id;type:uuid;not null;index" json:"payment_entity_id"`
	PaymentEventID    uuid.UUID `gorm:"column:payment_event_id;type:uuid;not null;index" json:"payment_event_id"`

	PaymentAmount   helper.Money `gorm:"column:payment_amount;type:numeric(10,2);not null" json:"payment_amount"`
	PaymentCurrency string       `gorm:"column:payment_currency;type:varchar(3);not null;default:'INR'" json:"payment_currency"`
	PaymentStatus   string       `gorm:"column:payment_status;type:varchar(20);not null;default:'created';index" json:"payment_status"`
	PaymentMethod   *string      `gorm:"column:payment_method;type:varchar(50)" json:"payment_method,omitempty"`
	PaymentGateway  string       `gorm:"column:payment_gateway;type:varchar(50);not null;default:'cashfree'" json:"payment_gateway"`

	// Opaque provider response (order ack, webhook body)
	PaymentGatewayResponse datatypes.JSON `gorm:"column:payment_gateway_response" json:"payment_gateway_response,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentStatus == "" {
		m.PaymentStatus = PaymentStatusCreated
	}
	return nil
}
