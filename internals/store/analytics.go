package store

import (
	"context"

	"github.com/google/uuid"

	certModel "fdp_backend/internals/features/certificates/model"
	paymentModel "fdp_backend/internals/features/payments/model"
	regModel "fdp_backend/internals/features/registrations/model"
	helper "fdp_backend/internals/helpers"
)

type EventAnalytics struct {
	TotalHostColleges     int64        `json:"totalHostColleges"`
	TotalFaculty          int64        `json:"totalFaculty"`
	TotalRevenue          helper.Money `json:"totalRevenue"`
	PaymentsPending       int64        `json:"paymentsPending"`
	PaymentsCompleted     int64        `json:"paymentsCompleted"`
	CertificatesGenerated int64        `json:"certificatesGenerated"`
}

// EventAnalytics aggregates the admin dashboard numbers for one event.
// Revenue is the sum of amount paid by completed host colleges and faculty.
func (s *Store) EventAnalytics(ctx context.Context, eventID uuid.UUID) (*EventAnalytics, error) {
	var out EventAnalytics
	db := s.db(ctx)

	if err := db.Model(&regModel.HostCollegeModel{}).
		Where("host_college_event_id = ? AND host_college_payment_status = ?", eventID, regModel.PaymentStatusCompleted).
		Count(&out.TotalHostColleges).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&regModel.FacultyRegistrationModel{}).
		Where("faculty_event_id = ? AND faculty_payment_status = ?", eventID, regModel.PaymentStatusCompleted).
		Count(&out.TotalFaculty).Error; err != nil {
		return nil, err
	}

	var hostRevenue, facultyRevenue float64
	if err := db.Model(&regModel.HostCollegeModel{}).
		Select("COALESCE(SUM(host_college_amount_paid), 0)").
		Where("host_college_event_id = ? AND host_college_payment_status = ?", eventID, regModel.PaymentStatusCompleted).
		Scan(&hostRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&regModel.FacultyRegistrationModel{}).
		Select("COALESCE(SUM(faculty_amount_paid), 0)").
		Where("faculty_event_id = ? AND faculty_payment_status = ?", eventID, regModel.PaymentStatusCompleted).
		Scan(&facultyRevenue).Error; err != nil {
		return nil, err
	}
	out.TotalRevenue = helper.MoneyFromFloat(hostRevenue) + helper.MoneyFromFloat(facultyRevenue)

	if err := db.Model(&paymentModel.PaymentModel{}).
		Where("payment_event_id = ? AND payment_status = ?", eventID, paymentModel.PaymentStatusPending).
		Count(&out.PaymentsPending).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&paymentModel.PaymentModel{}).
		Where("payment_event_id = ? AND payment_status = ?", eventID, paymentModel.PaymentStatusSuccess).
		Count(&out.PaymentsCompleted).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&certModel.CertificateModel{}).
		Where("certificate_event_id = ?", eventID).
		Count(&out.CertificatesGenerated).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
