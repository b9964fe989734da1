package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	eventModel "fdp_backend/internals/features/events/model"
	helper "fdp_backend/internals/helpers"
)

func (s *Store) CreateEvent(ctx context.Context, m *eventModel.EventModel) error {
	return s.db(ctx).Create(m).Error
}

func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	var m eventModel.EventModel
	ok, err := first(s.db(ctx).Where("event_id = ?", id), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

// ListEvents returns every event, newest first.
func (s *Store) ListEvents(ctx context.Context, p helper.Paging) ([]eventModel.EventModel, int64, error) {
	var total int64
	q := s.db(ctx).Model(&eventModel.EventModel{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []eventModel.EventModel
	err := paged(q.Order("event_created_at DESC"), p).Find(&rows).Error
	return rows, total, err
}

// ListActiveEvents is the public listing: upcoming events by start date.
func (s *Store) ListActiveEvents(ctx context.Context) ([]eventModel.EventModel, error) {
	var rows []eventModel.EventModel
	err := s.db(ctx).
		Where("event_status = ?", eventModel.EventStatusUpcoming).
		Order("event_start_date ASC").
		Find(&rows).Error
	return rows, err
}

// ListEventsStartingBetween feeds the reminder job.
func (s *Store) ListEventsStartingBetween(ctx context.Context, from, to time.Time) ([]eventModel.EventModel, error) {
	var rows []eventModel.EventModel
	err := s.db(ctx).
		Where("event_status = ? AND event_start_date >= ? AND event_start_date <= ?", eventModel.EventStatusUpcoming, from, to).
		Order("event_start_date ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateEvent applies a partial column map and returns the fresh row (nil if missing).
func (s *Store) UpdateEvent(ctx context.Context, id uuid.UUID, updates map[string]any) (*eventModel.EventModel, error) {
	if len(updates) > 0 {
		updates["event_updated_at"] = time.Now()
		res := s.db(ctx).Model(&eventModel.EventModel{}).Where("event_id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return s.GetEvent(ctx, id)
}

func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db(ctx).Where("event_id = ?", id).Delete(&eventModel.EventModel{})
	return res.RowsAffected > 0, res.Error
}
