package seeds

import (
	"log"
	"path/filepath"

	"gorm.io/gorm"

	"fdp_backend/internals/seeds/events"
	"fdp_backend/internals/seeds/templates"
)

// RunAllSeeds loads development data. Every seeder skips rows that exist,
// so it is safe to run on each start. dir is the seeds directory.
func RunAllSeeds(db *gorm.DB, dir string) error {
	//* Certificates
	if err := templates.SeedDefaultTemplate(db); err != nil {
		return err
	}

	//* Events
	if err := events.SeedEventsFromJSON(db, filepath.Join(dir, "events", "data_events.json")); err != nil {
		return err
	}

	log.Println("🌱 seeds done")
	return nil
}
