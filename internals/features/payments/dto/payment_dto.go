package dto

import helper "fdp_backend/internals/helpers"

// VerifyPaymentRequest is what the checkout page posts after the gateway
// redirect. Signature is hex HMAC-SHA256 over order_id + payment_id.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required,max=100"`
	PaymentID string `json:"payment_id" validate:"required,max=255"`
	Signature string `json:"signature" validate:"required"`
	Method    string `json:"payment_method" validate:"omitempty,max=50"`
}

type RefundRequest struct {
	Amount *helper.Money `json:"amount" validate:"omitempty,gt=0"`
	Reason string        `json:"reason" validate:"omitempty,max=255"`
}
