package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fdp_backend/internals/constants"
	helper "fdp_backend/internals/helpers"
)

/* ===================== Enums (string) ===================== */

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

/* ===================== Model ===================== */

type EventModel struct {
	EventID uuid.UUID `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`

	EventTitle       string  `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventDescription *string `gorm:"column:event_description;type:text" json:"event_description,omitempty"`
	EventCategory    string  `gorm:"column:event_category;type:varchar(100);not null" json:"event_category"`
	EventBannerImage *string `gorm:"column:event_banner_image;type:text" json:"event_banner_image,omitempty"`

	EventStartDate time.Time `gorm:"column:event_start_date;not null;index" json:"event_start_date"`
	EventEndDate   time.Time `gorm:"column:event_end_date;not null" json:"event_end_date"`

	// Fees per entity type
	EventHostFee    helper.Money `gorm:"column:event_host_fee;type:numeric(10,2);not null" json:"event_host_fee"`
	EventFacultyFee helper.Money `gorm:"column:event_faculty_fee;type:numeric(10,2);not null" json:"event_faculty_fee"`

	EventMaxParticipants *int   `gorm:"column:event_max_participants" json:"event_max_participants,omitempty"`
	EventStatus          string `gorm:"column:event_status;type:varchar(20);not null;default:'upcoming';index" json:"event_status"`

	// Links shared with confirmed registrants
	EventJoiningLink       *string `gorm:"column:event_joining_link;type:text" json:"event_joining_link,omitempty"`
	EventCommunityLink     *string `gorm:"column:event_community_link;type:text" json:"event_community_link,omitempty"`
	EventFeedbackFormLink  *string `gorm:"column:event_feedback_form_link;type:text" json:"event_feedback_form_link,omitempty"`
	EventWhatsappGroupLink *string `gorm:"column:event_whatsapp_group_link;type:text" json:"event_whatsapp_group_link,omitempty"`

	EventCreatedAt time.Time `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string {
	return "fdp_events"
}

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	if m.EventStatus == "" {
		m.EventStatus = EventStatusUpcoming
	}
	return nil
}

// FeeFor returns the configured fee for a registrant kind.
func (m *EventModel) FeeFor(entityType string) helper.Money {
	if entityType == constants.EntityHostCollege {
		return m.EventHostFee
	}
	return m.EventFacultyFee
}

// AcceptsRegistrations is false once an event is cancelled or over.
func (m *EventModel) AcceptsRegistrations() bool {
	return m.EventStatus == EventStatusUpcoming || m.EventStatus == EventStatusOngoing
}

func IsValidEventStatus(s string) bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}
