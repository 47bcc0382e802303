package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/config"
	"github.com/mamadbah2/meadery/internal/service/reporting"
	"github.com/mamadbah2/meadery/pkg/clients/webhook"
)

// Scheduler manages the recurring fermentation digest job.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	notifier     webhook.Notifier
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The notifier may be nil
// when no webhook is configured; digests are then only logged and exported.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, notifier webhook.Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:         c,
		reportingSvc: reportingSvc,
		notifier:     notifier,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDigest)
	if err != nil {
		s.logger.Error("failed to schedule fermentation digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDigest() {
	s.logger.Info("generating fermentation digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	digest, err := s.reportingSvc.RunDigest(ctx)
	if err != nil {
		s.logger.Error("failed to run fermentation digest", zap.Error(err))
		if digest == "" {
			return
		}
	}

	if s.notifier == nil {
		s.logger.Info("digest ready", zap.String("digest", digest))
		return
	}

	if err := s.notifier.Notify(ctx, digest); err != nil {
		s.logger.Error("failed to send digest notification", zap.Error(err))
	} else {
		s.logger.Info("digest notification sent")
	}
}
