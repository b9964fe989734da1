package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	regModel "fdp_backend/internals/features/registrations/model"
	helper "fdp_backend/internals/helpers"
)

/* ===================== Host colleges ===================== */

func (s *Store) CreateHostCollege(ctx context.Context, m *regModel.HostCollegeModel) error {
	return s.db(ctx).Create(m).Error
}

func (s *Store) GetHostCollege(ctx context.Context, id uuid.UUID) (*regModel.HostCollegeModel, error) {
	var m regModel.HostCollegeModel
	ok, err := first(s.db(ctx).Where("host_college_id = ?", id), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListHostCollegesByEvent(ctx context.Context, eventID uuid.UUID) ([]regModel.HostCollegeModel, error) {
	var rows []regModel.HostCollegeModel
	err := s.db(ctx).
		Where("host_college_event_id = ?", eventID).
		Order("host_college_registered_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListCompletedHostColleges returns host colleges with a confirmed payment.
func (s *Store) ListCompletedHostColleges(ctx context.Context, eventID uuid.UUID) ([]regModel.HostCollegeModel, error) {
	var rows []regModel.HostCollegeModel
	err := s.db(ctx).
		Where("host_college_event_id = ? AND host_college_payment_status = ?", eventID, regModel.PaymentStatusCompleted).
		Order("host_college_registered_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *Store) UpdateHostCollege(ctx context.Context, id uuid.UUID, updates map[string]any) (*regModel.HostCollegeModel, error) {
	if len(updates) > 0 {
		updates["host_college_updated_at"] = time.Now()
		if err := s.db(ctx).Model(&regModel.HostCollegeModel{}).
			Where("host_college_id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetHostCollege(ctx, id)
}

func (s *Store) DeleteHostCollege(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db(ctx).Where("host_college_id = ?", id).Delete(&regModel.HostCollegeModel{})
	return res.RowsAffected > 0, res.Error
}

// MarkHostCollegePaid moves a pending or failed host college to completed.
// changed is false when the row was already completed (or refunded), so
// callers can skip the confirmation fan-out on repeats.
func (s *Store) MarkHostCollegePaid(ctx context.Context, id uuid.UUID, reference string, amount helper.Money) (changed bool, err error) {
	res := s.db(ctx).Model(&regModel.HostCollegeModel{}).
		Where("host_college_id = ? AND host_college_payment_status IN ?", id,
			[]string{regModel.PaymentStatusPending, regModel.PaymentStatusFailed}).
		Updates(map[string]any{
			"host_college_payment_status":    regModel.PaymentStatusCompleted,
			"host_college_payment_reference": reference,
			"host_college_amount_paid":       amount,
			"host_college_updated_at":        time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (s *Store) MarkHostCollegeFailed(ctx context.Context, id uuid.UUID, reference string) (bool, error) {
	res := s.db(ctx).Model(&regModel.HostCollegeModel{}).
		Where("host_college_id = ? AND host_college_payment_status = ?", id, regModel.PaymentStatusPending).
		Updates(map[string]any{
			"host_college_payment_status":    regModel.PaymentStatusFailed,
			"host_college_payment_reference": reference,
			"host_college_updated_at":        time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (s *Store) MarkHostCollegeRefunded(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db(ctx).Model(&regModel.HostCollegeModel{}).
		Where("host_college_id = ? AND host_college_payment_status = ?", id, regModel.PaymentStatusCompleted).
		Updates(map[string]any{
			"host_college_payment_status": regModel.PaymentStatusRefunded,
			"host_college_updated_at":     time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

/* ===================== Faculty ===================== */

func (s *Store) CreateFaculty(ctx context.Context, m *regModel.FacultyRegistrationModel) error {
	return s.db(ctx).Create(m).Error
}

func (s *Store) GetFaculty(ctx context.Context, id uuid.UUID) (*regModel.FacultyRegistrationModel, error) {
	var m regModel.FacultyRegistrationModel
	ok, err := first(s.db(ctx).Where("faculty_id = ?", id), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListFacultyByEvent(ctx context.Context, eventID uuid.UUID) ([]regModel.FacultyRegistrationModel, error) {
	var rows []regModel.FacultyRegistrationModel
	err := s.db(ctx).
		Where("faculty_event_id = ?", eventID).
		Order("faculty_registered_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *Store) ListFacultyByHostCollege(ctx context.Context, hostCollegeID uuid.UUID) ([]regModel.FacultyRegistrationModel, error) {
	var rows []regModel.FacultyRegistrationModel
	err := s.db(ctx).
		Where("faculty_host_college_id = ?", hostCollegeID).
		Order("faculty_registered_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListCompletedFaculty returns paid faculty of an event, oldest first.
func (s *Store) ListCompletedFaculty(ctx context.Context, eventID uuid.UUID) ([]regModel.FacultyRegistrationModel, error) {
	var rows []regModel.FacultyRegistrationModel
	err := s.db(ctx).
		Where("faculty_event_id = ? AND faculty_payment_status = ?", eventID, regModel.PaymentStatusCompleted).
		Order("faculty_registered_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListCertificateCandidates returns paid faculty with feedback in, oldest first.
// Rows that already carry a certificate are included so the bulk job can
// report them as already issued.
func (s *Store) ListCertificateCandidates(ctx context.Context, eventID uuid.UUID) ([]regModel.FacultyRegistrationModel, error) {
	var rows []regModel.FacultyRegistrationModel
	err := s.db(ctx).
		Where("faculty_event_id = ? AND faculty_payment_status = ? AND faculty_feedback_submitted = ?",
			eventID, regModel.PaymentStatusCompleted, true).
		Order("faculty_registered_at ASC").
		Find(&rows).Error
	return rows, err
}

// CountActiveFaculty counts registrations that hold or may still take a seat.
func (s *Store) CountActiveFaculty(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	err := s.db(ctx).Model(&regModel.FacultyRegistrationModel{}).
		Where("faculty_event_id = ? AND faculty_payment_status IN ?", eventID,
			[]string{regModel.PaymentStatusPending, regModel.PaymentStatusCompleted}).
		Count(&n).Error
	return n, err
}

func (s *Store) UpdateFaculty(ctx context.Context, id uuid.UUID, updates map[string]any) (*regModel.FacultyRegistrationModel, error) {
	if len(updates) > 0 {
		updates["faculty_updated_at"] = time.Now()
		if err := s.db(ctx).Model(&regModel.FacultyRegistrationModel{}).
			Where("faculty_id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetFaculty(ctx, id)
}

func (s *Store) DeleteFaculty(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db(ctx).Where("faculty_id = ?", id).Delete(&regModel.FacultyRegistrationModel{})
	return res.RowsAffected > 0, res.Error
}

// MarkFacultyPaid is the faculty twin of MarkHostCollegePaid.
func (s *Store) MarkFacultyPaid(ctx context.Context, id uuid.UUID, reference string, amount helper.Money) (bool, error) {
	res := s.db(ctx).Model(&regModel.FacultyRegistrationModel{}).
		Where("faculty_id = ? AND faculty_payment_status IN ?", id,
			[]string{regModel.PaymentStatusPending, regModel.PaymentStatusFailed}).
		Updates(map[string]any{
			"faculty_payment_status":    regModel.PaymentStatusCompleted,
			"faculty_payment_reference": reference,
			"faculty_amount_paid":       amount,
			"faculty_updated_at":        time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (s *Store) MarkFacultyFailed(ctx context.Context, id uuid.UUID, reference string) (bool, error) {
	res := s.db(ctx).Model(&regModel.FacultyRegistrationModel{}).
		Where("faculty_id = ? AND faculty_payment_status = ?", id, regModel.PaymentStatusPending).
		Updates(map[string]any{
			"faculty_payment_status":    regModel.PaymentStatusFailed,
			"faculty_payment_reference": reference,
			"faculty_updated_at":        time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (s *Store) MarkFacultyRefunded(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db(ctx).Model(&regModel.FacultyRegistrationModel{}).
		Where("faculty_id = ? AND faculty_payment_status = ?", id, regModel.PaymentStatusCompleted).
		Updates(map[string]any{
			"faculty_payment_status": regModel.PaymentStatusRefunded,
			"faculty_updated_at":     time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// MarkFeedbackSubmitted sets the flag; repeating it is a no-op.
func (s *Store) MarkFeedbackSubmitted(ctx context.Context, id uuid.UUID) error {
	return s.db(ctx).Model(&regModel.FacultyRegistrationModel{}).
		Where("faculty_id = ? AND faculty_feedback_submitted = ?", id, false).
		Updates(map[string]any{
			"faculty_feedback_submitted": true,
			"faculty_updated_at":         time.Now(),
		}).Error
}

func (s *Store) MarkCertificateIssued(ctx context.Context, id uuid.UUID, url string) error {
	return s.db(ctx).Model(&regModel.FacultyRegistrationModel{}).
		Where("faculty_id = ?", id).
		Updates(map[string]any{
			"faculty_certificate_generated": true,
			"faculty_certificate_url":       url,
			"faculty_updated_at":            time.Now(),
		}).Error
}
