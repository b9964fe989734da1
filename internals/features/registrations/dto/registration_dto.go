package dto

import (
	"strings"

	"github.com/google/uuid"

	"fdp_backend/internals/features/registrations/model"
)

// HostCollegeRequest arrives as JSON or as multipart/form-data with an
// optional "logo" file part.
type HostCollegeRequest struct {
	FDPID         string  `json:"fdp_id" form:"fdp_id" validate:"required,uuid"`
	CollegeName   string  `json:"college_name" form:"college_name" validate:"required,max=255"`
	Address       *string `json:"address" form:"address"`
	Website       *string `json:"website" form:"website" validate:"omitempty,url"`
	ContactPerson string  `json:"contact_person" form:"contact_person" validate:"required,max=255"`
	Email         string  `json:"email" form:"email" validate:"required,email"`
	Phone         string  `json:"phone" form:"phone" validate:"required,phone"`
	Whatsapp      *string `json:"whatsapp" form:"whatsapp" validate:"omitempty,phone"`
}

func (r *HostCollegeRequest) ToModel() *model.HostCollegeModel {
	return &model.HostCollegeModel{
		HostCollegeEventID:       uuid.MustParse(r.FDPID),
		HostCollegeName:          strings.TrimSpace(r.CollegeName),
		HostCollegeAddress:       blankToNil(r.Address),
		HostCollegeWebsite:       blankToNil(r.Website),
		HostCollegeContactPerson: strings.TrimSpace(r.ContactPerson),
		HostCollegeEmail:         strings.ToLower(strings.TrimSpace(r.Email)),
		HostCollegePhone:         strings.TrimSpace(r.Phone),
		HostCollegeWhatsapp:      blankToNil(r.Whatsapp),
	}
}

type FacultyRequest struct {
	FDPID         string  `json:"fdp_id" validate:"required,uuid"`
	HostCollegeID *string `json:"host_college_id" validate:"omitempty,uuid"`
	Name          string  `json:"name" validate:"required,max=255"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required,phone"`
	Whatsapp      *string `json:"whatsapp" validate:"omitempty,phone"`
	Designation   *string `json:"designation" validate:"omitempty,max=255"`
	Department    *string `json:"department" validate:"omitempty,max=255"`
	Institution   *string `json:"institution" validate:"omitempty,max=255"`
	CouponCode    string  `json:"coupon_code" validate:"omitempty,max=50"`
}

func (r *FacultyRequest) ToModel() *model.FacultyRegistrationModel {
	m := &model.FacultyRegistrationModel{
		FacultyEventID:     uuid.MustParse(r.FDPID),
		FacultyName:        strings.TrimSpace(r.Name),
		FacultyEmail:       strings.ToLower(strings.TrimSpace(r.Email)),
		FacultyPhone:       strings.TrimSpace(r.Phone),
		FacultyWhatsapp:    blankToNil(r.Whatsapp),
		FacultyDesignation: blankToNil(r.Designation),
		FacultyDepartment:  blankToNil(r.Department),
		FacultyInstitution: blankToNil(r.Institution),
	}
	if r.HostCollegeID != nil && *r.HostCollegeID != "" {
		id := uuid.MustParse(*r.HostCollegeID)
		m.FacultyHostCollegeID = &id
	}
	return m
}

// UpdateHostCollegeRequest covers the contact fields an admin may correct.
// Payment state is owned by the payment flow and is not editable here.
type UpdateHostCollegeRequest struct {
	CollegeName   *string `json:"college_name" validate:"omitempty,max=255"`
	Address       *string `json:"address"`
	Website       *string `json:"website" validate:"omitempty,url"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=255"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,phone"`
	Whatsapp      *string `json:"whatsapp" validate:"omitempty,phone"`
}

func (r *UpdateHostCollegeRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	set(m, "host_college_name", r.CollegeName)
	set(m, "host_college_address", r.Address)
	set(m, "host_college_website", r.Website)
	set(m, "host_college_contact_person", r.ContactPerson)
	set(m, "host_college_email", r.Email)
	set(m, "host_college_phone", r.Phone)
	set(m, "host_college_whatsapp", r.Whatsapp)
	return m
}

type UpdateFacultyRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,phone"`
	Whatsapp    *string `json:"whatsapp" validate:"omitempty,phone"`
	Designation *string `json:"designation" validate:"omitempty,max=255"`
	Department  *string `json:"department" validate:"omitempty,max=255"`
	Institution *string `json:"institution" validate:"omitempty,max=255"`
}

func (r *UpdateFacultyRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	set(m, "faculty_name", r.Name)
	set(m, "faculty_email", r.Email)
	set(m, "faculty_phone", r.Phone)
	set(m, "faculty_whatsapp", r.Whatsapp)
	set(m, "faculty_designation", r.Designation)
	set(m, "faculty_department", r.Department)
	set(m, "faculty_institution", r.Institution)
	return m
}

func set(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = strings.TrimSpace(*v)
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
