package database

import (
	"gorm.io/gorm"

	certModel "fdp_backend/internals/features/certificates/model"
	commModel "fdp_backend/internals/features/communications/model"
	couponModel "fdp_backend/internals/features/coupons/model"
	eventModel "fdp_backend/internals/features/events/model"
	paymentModel "fdp_backend/internals/features/payments/model"
	regModel "fdp_backend/internals/features/registrations/model"
)

// Models is the full schema, parents first.
func Models() []any {
	return []any{
		&eventModel.EventModel{},
		&regModel.HostCollegeModel{},
		&regModel.FacultyRegistrationModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.PaymentGatewayEventModel{},
		&certModel.CertificateTemplateModel{},
		&certModel.CertificateModel{},
		&commModel.CommunicationLogModel{},
		&couponModel.CouponModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
