package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler runs an Auditor on a fixed interval, starting immediately.
type Scheduler struct {
	scheduler *gocron.Scheduler
	auditor   *Auditor
	interval  time.Duration
	logger    *slog.Logger

	mu   sync.Mutex
	last *Report
}

// NewScheduler creates a Scheduler; call Start to begin.
func NewScheduler(auditor *Auditor, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		auditor:   auditor,
		interval:  interval,
		logger:    logger.With(slog.String("component", "chain_audit_scheduler")),
	}
}

// Start schedules the audit and returns without waiting for it. Runs never
// overlap; ctx bounds every run.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule chain audit: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("chain audit scheduled", slog.Duration("interval", s.interval))
	return nil
}

// Stop stops scheduling new runs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// LastReport returns the report of the most recent successful run, or nil.
func (s *Scheduler) LastReport() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	report, err := s.auditor.RunOnce(ctx)
	if err != nil {
		s.logger.Error("chain audit failed", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
}
