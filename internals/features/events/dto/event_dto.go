package dto

import (
	"time"

	"fdp_backend/internals/features/events/model"
	helper "fdp_backend/internals/helpers"
)

type CreateEventRequest struct {
	EventTitle       string  `json:"event_title" validate:"required,max=255"`
	EventDescription *string `json:"event_description"`
	EventCategory    string  `json:"event_category" validate:"required,max=100"`
	EventBannerImage *string `json:"event_banner_image" validate:"omitempty,url"`

	EventStartDate time.Time `json:"event_start_date" validate:"required"`
	EventEndDate   time.Time `json:"event_end_date" validate:"required,gtefield=EventStartDate"`

	EventHostFee    helper.Money `json:"event_host_fee" validate:"gte=0"`
	EventFacultyFee helper.Money `json:"event_faculty_fee" validate:"gte=0"`

	EventMaxParticipants *int   `json:"event_max_participants" validate:"omitempty,gt=0"`
	EventStatus          string `json:"event_status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`

	EventJoiningLink       *string `json:"event_joining_link" validate:"omitempty,url"`
	EventCommunityLink     *string `json:"event_community_link" validate:"omitempty,url"`
	EventFeedbackFormLink  *string `json:"event_feedback_form_link" validate:"omitempty,url"`
	EventWhatsappGroupLink *string `json:"event_whatsapp_group_link" validate:"omitempty,url"`
}

func (r *CreateEventRequest) ToModel() *model.EventModel {
	return &model.EventModel{
		EventTitle:             r.EventTitle,
		EventDescription:       r.EventDescription,
		EventCategory:          r.EventCategory,
		EventBannerImage:       r.EventBannerImage,
		EventStartDate:         r.EventStartDate,
		EventEndDate:           r.EventEndDate,
		EventHostFee:           r.EventHostFee,
		EventFacultyFee:        r.EventFacultyFee,
		EventMaxParticipants:   r.EventMaxParticipants,
		EventStatus:            r.EventStatus,
		EventJoiningLink:       r.EventJoiningLink,
		EventCommunityLink:     r.EventCommunityLink,
		EventFeedbackFormLink:  r.EventFeedbackFormLink,
		EventWhatsappGroupLink: r.EventWhatsappGroupLink,
	}
}

// UpdateEventRequest is a partial update; nil fields are left alone.
type UpdateEventRequest struct {
	EventTitle       *string `json:"event_title" validate:"omitempty,max=255"`
	EventDescription *string `json:"event_description"`
	EventCategory    *string `json:"event_category" validate:"omitempty,max=100"`
	EventBannerImage *string `json:"event_banner_image" validate:"omitempty,url"`

	EventStartDate *time.Time `json:"event_start_date"`
	EventEndDate   *time.Time `json:"event_end_date"`

	EventHostFee    *helper.Money `json:"event_host_fee" validate:"omitempty,gte=0"`
	EventFacultyFee *helper.Money `json:"event_faculty_fee" validate:"omitempty,gte=0"`

	EventMaxParticipants *int    `json:"event_max_participants" validate:"omitempty,gt=0"`
	EventStatus          *string `json:"event_status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`

	EventJoiningLink       *string `json:"event_joining_link" validate:"omitempty,url"`
	EventCommunityLink     *string `json:"event_community_link" validate:"omitempty,url"`
	EventFeedbackFormLink  *string `json:"event_feedback_form_link" validate:"omitempty,url"`
	EventWhatsappGroupLink *string `json:"event_whatsapp_group_link" validate:"omitempty,url"`
}

func (r *UpdateEventRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.EventTitle != nil {
		m["event_title"] = *r.EventTitle
	}
	if r.EventDescription != nil {
		m["event_description"] = *r.EventDescription
	}
	if r.EventCategory != nil {
		m["event_category"] = *r.EventCategory
	}
	if r.EventBannerImage != nil {
		m["event_banner_image"] = *r.EventBannerImage
	}
	if r.EventStartDate != nil {
		m["event_start_date"] = *r.EventStartDate
	}
	if r.EventEndDate != nil {
		m["event_end_date"] = *r.EventEndDate
	}
	if r.EventHostFee != nil {
		m["event_host_fee"] = *r.EventHostFee
	}
	if r.EventFacultyFee != nil {
		m["event_faculty_fee"] = *r.EventFacultyFee
	}
	if r.EventMaxParticipants != nil {
		m["event_max_participants"] = *r.EventMaxParticipants
	}
	if r.EventStatus != nil {
		m["event_status"] = *r.EventStatus
	}
	if r.EventJoiningLink != nil {
		m["event_joining_link"] = *r.EventJoiningLink
	}
	if r.EventCommunityLink != nil {
		m["event_community_link"] = *r.EventCommunityLink
	}
	if r.EventFeedbackFormLink != nil {
		m["event_feedback_form_link"] = *r.EventFeedbackFormLink
	}
	if r.EventWhatsappGroupLink != nil {
		m["event_whatsapp_group_link"] = *r.EventWhatsappGroupLink
	}
	return m
}
