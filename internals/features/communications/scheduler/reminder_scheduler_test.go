package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"fdp_backend/internals/configs"
)

type countingRunner struct {
	calls int
	lead  time.Duration
	err   error
}

func (r *countingRunner) SendDueReminders(_ context.Context, _ time.Time, lead time.Duration) (int, error) {
	r.calls++
	r.lead = lead
	return 1, r.err
}

func TestRunOncePassesLeadTime(t *testing.T) {
	r := &countingRunner{}
	RunOnce(context.Background(), r, 24*time.Hour, time.Now())
	if r.calls != 1 || r.lead != 24*time.Hour {
		t.Fatalf("calls=%d lead=%s", r.calls, r.lead)
	}

	r.err = errors.New("db down")
	RunOnce(context.Background(), r, time.Hour, time.Now())
	if r.calls != 2 {
		t.Fatalf("calls=%d after failing run", r.calls)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	if _, err := StartReminderScheduler(configs.Reminders{Schedule: "not a cron"}, &countingRunner{}); err == nil {
		t.Fatal("expected error for an invalid cron spec")
	}
	c, err := StartReminderScheduler(configs.Reminders{Schedule: "0 8 * * *", LeadTime: time.Hour}, &countingRunner{})
	if err != nil {
		t.Fatalf("valid schedule: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("entries = %d", len(c.Entries()))
	}
	c.Stop()
}
