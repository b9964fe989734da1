package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"fdp_backend/internals/configs"
)

// ReminderRunner sends reminders for every event starting inside the lead window.
type ReminderRunner interface {
	SendDueReminders(ctx context.Context, now time.Time, lead time.Duration) (int, error)
}

// StartReminderScheduler registers the reminder job and starts the cron.
// Overlapping runs are skipped. Callers stop it with the returned cron.
func StartReminderScheduler(cfg configs.Reminders, runner ReminderRunner) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		RunOnce(ctx, runner, cfg.LeadTime, time.Now())
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[REMINDER] started schedule=%q lead=%s", cfg.Schedule, cfg.LeadTime)
	c.Start()
	return c, nil
}

func RunOnce(ctx context.Context, runner ReminderRunner, lead time.Duration, now time.Time) {
	n, err := runner.SendDueReminders(ctx, now, lead)
	if err != nil {
		log.Printf("[REMINDER] run failed: %v", err)
		return
	}
	log.Printf("[REMINDER] %d event(s) processed", n)
}
