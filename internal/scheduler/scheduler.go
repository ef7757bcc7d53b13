package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/config"
	"github.com/warewise/slotkeeper/internal/service/reporting"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start schedules the daily stock snapshot and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Snapshot.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Snapshot.CronSchedule, s.snapshotStock)
	if err != nil {
		s.logger.Error("failed to schedule stock snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) snapshotStock() {
	s.logger.Info("generating daily stock snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.reportingSvc.SnapshotDaily(ctx); err != nil {
		s.logger.Error("failed to generate stock snapshot", zap.Error(err))
		return
	}

	s.logger.Info("daily stock snapshot completed")
}
