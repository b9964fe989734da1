package seeds

import (
	"testing"

	"fdp_backend/internals/databases/testdb"
	certModel "fdp_backend/internals/features/certificates/model"
	eventModel "fdp_backend/internals/features/events/model"
	helper "fdp_backend/internals/helpers"
)

func TestRunAllSeedsIsIdempotent(t *testing.T) {
	db := testdb.Open(t)

	for i := 0; i < 2; i++ {
		if err := RunAllSeeds(db, "."); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	var events []eventModel.EventModel
	if err := db.Order("event_start_date").Find(&events).Error; err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].EventFacultyFee != helper.Money(150000) || events[0].EventHostFee.String() != "5000.00" {
		t.Errorf("fees = %s/%s", events[0].EventHostFee, events[0].EventFacultyFee)
	}
	if events[0].EventStatus != eventModel.EventStatusUpcoming {
		t.Errorf("status = %q", events[0].EventStatus)
	}

	var defaults int64
	db.Model(&certModel.CertificateTemplateModel{}).Where("template_is_default = ?", true).Count(&defaults)
	if defaults != 1 {
		t.Errorf("default templates = %d, want 1", defaults)
	}
}

func TestRunAllSeedsMissingFile(t *testing.T) {
	db := testdb.Open(t)
	if err := RunAllSeeds(db, t.TempDir()); err == nil {
		t.Fatal("expected error for missing data file")
	}
}
