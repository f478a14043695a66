package scheduler

import (
	"context"
	"time"

	"go-recruit/internal/config"
	"go-recruit/internal/features/activity"
	"go-recruit/internal/features/export"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background jobs: nightly activity log pruning and the
// optional warehouse export.
type Scheduler struct {
	cron            *cron.Cron
	config          *config.Config
	activityService activity.ActivityService
	exportService   export.ExportService
	logger          *zap.Logger
}

func NewScheduler(
	cfg *config.Config,
	activityService activity.ActivityService,
	exportService export.ExportService,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		config:          cfg,
		activityService: activityService,
		exportService:   exportService,
		logger:          logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.pruneActivityLogs); err != nil {
		return err
	}

	if s.exportService.Enabled() && s.config.ExportCron != "" {
		if _, err := s.cron.AddFunc(s.config.ExportCron, s.runExport); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) pruneActivityLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	days := s.config.ActivityRetentionDays
	if days <= 0 {
		return
	}

	deleted, err := s.activityService.Prune(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		s.logger.Error("activity log pruning failed", zap.Error(err))
		return
	}
	s.logger.Info("activity logs pruned", zap.Int64("deleted", deleted))
}

func (s *Scheduler) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := s.exportService.ExportCadets(ctx)
	if err != nil {
		s.logger.Error("scheduled warehouse export failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled warehouse export finished",
		zap.Int("exported", result.Exported), zap.Int("failed", result.Failed))
}
