package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"goldlink-backend/internal/config"
	"goldlink-backend/internal/jobs"
	"goldlink-backend/internal/logger"
)

// Scheduler runs the maintenance jobs on cron schedules. All schedules use
// six-field cron expressions (with seconds) evaluated in UTC.
type Scheduler struct {
	cron *cron.Cron
}

func New(runner *jobs.Runner, cfg config.SchedulerConfig) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC))

	entries := []struct {
		name string
		spec string
		run  func()
	}{
		{"expire_pending_bookings", cfg.ExpirePendingBookings,
			jobs.RunWithRecovery("expire_pending_bookings", runner.ExpireStalePendingBookings)},
		{"mark_overdue_bookings", cfg.MarkOverdueBookings,
			jobs.RunWithRecovery("mark_overdue_bookings", runner.MarkOverdueActiveBookings)},
		{"flush_jewelry_views", cfg.FlushJewelryViews,
			jobs.RunWithRecovery("flush_jewelry_views", runner.FlushJewelryViews)},
	}

	for _, e := range entries {
		if _, err := c.AddFunc(e.spec, e.run); err != nil {
			return nil, fmt.Errorf("invalid cron expression for %s: %w", e.name, err)
		}
		logger.Info("job scheduled", "job", e.name, "spec", e.spec)
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
