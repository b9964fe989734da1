package store

import (
	"context"

	"github.com/google/uuid"

	commModel "fdp_backend/internals/features/communications/model"
	helper "fdp_backend/internals/helpers"
)

// Communication logs are append-only: there is no update or delete here.

func (s *Store) CreateCommunicationLog(ctx context.Context, m *commModel.CommunicationLogModel) error {
	return s.db(ctx).Create(m).Error
}

func (s *Store) ListCommunicationLogsByEvent(ctx context.Context, eventID uuid.UUID, p helper.Paging) ([]commModel.CommunicationLogModel, int64, error) {
	var total int64
	q := s.db(ctx).Model(&commModel.CommunicationLogModel{}).Where("log_event_id = ?", eventID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []commModel.CommunicationLogModel
	err := paged(q.Order("log_created_at DESC"), p).Find(&rows).Error
	return rows, total, err
}

// HasSentMessage reports whether a message of this type already went out
// successfully to the recipient for the event.
func (s *Store) HasSentMessage(ctx context.Context, eventID, recipientID uuid.UUID, messageType string) (bool, error) {
	var n int64
	err := s.db(ctx).Model(&commModel.CommunicationLogModel{}).
		Where("log_event_id = ? AND log_recipient_id = ? AND log_message_type = ? AND log_status = ?",
			eventID, recipientID, messageType, commModel.LogStatusSent).
		Count(&n).Error
	return n > 0, err
}
