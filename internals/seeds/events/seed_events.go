package events

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"fdp_backend/internals/features/events/model"
	helper "fdp_backend/internals/helpers"
)

type EventSeed struct {
	Title           string       `json:"event_title"`
	Description     string       `json:"event_description"`
	Category        string       `json:"event_category"`
	StartDate       string       `json:"event_start_date"`
	EndDate         string       `json:"event_end_date"`
	HostFee         helper.Money `json:"event_host_fee"`
	FacultyFee      helper.Money `json:"event_faculty_fee"`
	MaxParticipants *int         `json:"event_max_participants"`
	JoiningLink     string       `json:"event_joining_link"`
}

// SeedEventsFromJSON inserts events whose title is not taken yet.
func SeedEventsFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Reading file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}

	var seeds []EventSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, seed := range seeds {
		var n int64
		if err := db.Model(&model.EventModel{}).Where("event_title = ?", seed.Title).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Printf("ℹ️ Event '%s' already exists, skipping", seed.Title)
			continue
		}

		start, err := time.Parse(time.DateOnly, seed.StartDate)
		if err != nil {
			return fmt.Errorf("event %q start date: %w", seed.Title, err)
		}
		end, err := time.Parse(time.DateOnly, seed.EndDate)
		if err != nil {
			return fmt.Errorf("event %q end date: %w", seed.Title, err)
		}

		ev := model.EventModel{
			EventTitle:           seed.Title,
			EventDescription:     optional(seed.Description),
			EventCategory:        seed.Category,
			EventStartDate:       start,
			EventEndDate:         end,
			EventHostFee:         seed.HostFee,
			EventFacultyFee:      seed.FacultyFee,
			EventMaxParticipants: seed.MaxParticipants,
			EventJoiningLink:     optional(seed.JoiningLink),
		}
		if err := db.Create(&ev).Error; err != nil {
			log.Printf("❌ Failed to insert '%s': %v", seed.Title, err)
			continue
		}
		log.Printf("✅ Inserted '%s'", seed.Title)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
