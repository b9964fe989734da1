package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	certModel "fdp_backend/internals/features/certificates/model"
	helper "fdp_backend/internals/helpers"
)

// CreateCertificate inserts the snapshot; a second row for the same faculty
// registration is rejected with ErrCertificateExists.
func (s *Store) CreateCertificate(ctx context.Context, m *certModel.CertificateModel) error {
	err := s.db(ctx).Create(m).Error
	if helper.IsUniqueViolation(err) {
		return ErrCertificateExists
	}
	return err
}

func (s *Store) GetCertificate(ctx context.Context, id uuid.UUID) (*certModel.CertificateModel, error) {
	var m certModel.CertificateModel
	ok, err := first(s.db(ctx).Where("certificate_id = ?", id), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

func (s *Store) GetCertificateByFaculty(ctx context.Context, facultyID uuid.UUID) (*certModel.CertificateModel, error) {
	var m certModel.CertificateModel
	ok, err := first(s.db(ctx).Where("certificate_faculty_id = ?", facultyID), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListCertificatesByEvent(ctx context.Context, eventID uuid.UUID) ([]certModel.CertificateModel, error) {
	var rows []certModel.CertificateModel
	err := s.db(ctx).
		Where("certificate_event_id = ?", eventID).
		Order("certificate_issued_at DESC").
		Find(&rows).Error
	return rows, err
}

/* ===================== Templates ===================== */

func (s *Store) CreateTemplate(ctx context.Context, m *certModel.CertificateTemplateModel) error {
	return s.db(ctx).Transaction(func(tx *gorm.DB) error {
		if m.TemplateIsDefault {
			if err := clearDefaultTemplate(tx); err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
}

func (s *Store) GetTemplate(ctx context.Context, id uuid.UUID) (*certModel.CertificateTemplateModel, error) {
	var m certModel.CertificateTemplateModel
	ok, err := first(s.db(ctx).Where("template_id = ?", id), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]certModel.CertificateTemplateModel, error) {
	var rows []certModel.CertificateTemplateModel
	err := s.db(ctx).Order("template_created_at DESC").Find(&rows).Error
	return rows, err
}

func (s *Store) GetDefaultTemplate(ctx context.Context) (*certModel.CertificateTemplateModel, error) {
	var m certModel.CertificateTemplateModel
	ok, err := first(s.db(ctx).Where("template_is_default = ?", true), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

// SetDefaultTemplate swaps the default flag in one transaction.
func (s *Store) SetDefaultTemplate(ctx context.Context, id uuid.UUID) (bool, error) {
	var changed bool
	err := s.db(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefaultTemplate(tx); err != nil {
			return err
		}
		res := tx.Model(&certModel.CertificateTemplateModel{}).
			Where("template_id = ?", id).
			Update("template_is_default", true)
		if res.Error != nil {
			return res.Error
		}
		changed = res.RowsAffected > 0
		if !changed {
			// unknown id: keep the previous default
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return changed, err
}

func (s *Store) DeleteTemplate(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db(ctx).Where("template_id = ?", id).Delete(&certModel.CertificateTemplateModel{})
	return res.RowsAffected > 0, res.Error
}

func clearDefaultTemplate(tx *gorm.DB) error {
	return tx.Model(&certModel.CertificateTemplateModel{}).
		Where("template_is_default = ?", true).
		Update("template_is_default", false).Error
}
