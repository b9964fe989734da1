package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	paymentModel "fdp_backend/internals/features/payments/model"
	helper "fdp_backend/internals/helpers"
)

func (s *Store) CreatePayment(ctx context.Context, m *paymentModel.PaymentModel) error {
	return s.db(ctx).Create(m).Error
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*paymentModel.PaymentModel, error) {
	var m paymentModel.PaymentModel
	ok, err := first(s.db(ctx).Where("payment_id = ?", id), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

func (s *Store) GetPaymentByOrderID(ctx context.Context, orderID string) (*paymentModel.PaymentModel, error) {
	var m paymentModel.PaymentModel
	ok, err := first(s.db(ctx).Where("payment_order_id = ?", orderID), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListPaymentsByEvent(ctx context.Context, eventID uuid.UUID, p helper.Paging) ([]paymentModel.PaymentModel, int64, error) {
	var total int64
	q := s.db(ctx).Model(&paymentModel.PaymentModel{}).Where("payment_event_id = ?", eventID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []paymentModel.PaymentModel
	err := paged(q.Order("payment_created_at DESC"), p).Find(&rows).Error
	return rows, total, err
}

func (s *Store) UpdatePayment(ctx context.Context, id uuid.UUID, updates map[string]any) (*paymentModel.PaymentModel, error) {
	if len(updates) > 0 {
		updates["payment_updated_at"] = time.Now()
		if err := s.db(ctx).Model(&paymentModel.PaymentModel{}).
			Where("payment_id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetPayment(ctx, id)
}

// TransitionPayment applies updates only while the payment is in one of the
// from states. changed is false when another caller already moved it.
func (s *Store) TransitionPayment(ctx context.Context, id uuid.UUID, from []string, updates map[string]any) (changed bool, err error) {
	updates["payment_updated_at"] = time.Now()
	res := s.db(ctx).Model(&paymentModel.PaymentModel{}).
		Where("payment_id = ? AND payment_status IN ?", id, from).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

/* ===================== Gateway events ===================== */

func (s *Store) CreateGatewayEvent(ctx context.Context, m *paymentModel.PaymentGatewayEventModel) error {
	return s.db(ctx).Create(m).Error
}

// FinishGatewayEvent records the processing outcome of a webhook delivery.
func (s *Store) FinishGatewayEvent(ctx context.Context, id uuid.UUID, paymentID *uuid.UUID, status string, errMsg *string) error {
	now := time.Now()
	return s.db(ctx).Model(&paymentModel.PaymentGatewayEventModel{}).
		Where("gateway_event_id = ?", id).
		Updates(map[string]any{
			"gateway_event_payment_id":   paymentID,
			"gateway_event_status":       status,
			"gateway_event_error":        errMsg,
			"gateway_event_processed_at": &now,
		}).Error
}

func (s *Store) ListGatewayEventsByPayment(ctx context.Context, paymentID uuid.UUID) ([]paymentModel.PaymentGatewayEventModel, error) {
	var rows []paymentModel.PaymentGatewayEventModel
	err := s.db(ctx).
		Where("gateway_event_payment_id = ?", paymentID).
		Order("gateway_event_received_at ASC").
		Find(&rows).Error
	return rows, err
}
