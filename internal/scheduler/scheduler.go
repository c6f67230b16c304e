package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/config"
)

// DigestGenerator renders the KPI digest text.
type DigestGenerator interface {
	GenerateDigest(ctx context.Context, at time.Time) (string, error)
}

// Notifier delivers the rendered digest.
type Notifier interface {
	PostText(ctx context.Context, text string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.DigestConfig
	digests  DigestGenerator
	notifier Notifier
	location *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. A nil notifier only logs the digest.
func NewScheduler(cfg config.DigestConfig, digests DigestGenerator, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		cfg:      cfg,
		digests:  digests,
		notifier: notifier,
		location: location,
		logger:   logger,
	}, nil
}

// Start registers the digest job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddJob(s.cfg.CronSchedule, s.digestJob()); err != nil {
		return fmt.Errorf("schedule kpi digest: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// digestJob wraps the digest run so a panic is logged instead of killing the process.
func (s *Scheduler) digestJob() cron.Job {
	return cron.NewChain(cron.Recover(cronLogger{logger: s.logger})).Then(cron.FuncJob(s.sendDigest))
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunDigest(ctx); err != nil {
		s.logger.Error("kpi digest failed", zap.Error(err))
	}
}

// RunDigest builds the digest now and hands it to the notifier.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	s.logger.Info("generating kpi digest")

	text, err := s.digests.GenerateDigest(ctx, time.Now().In(s.location))
	if err != nil {
		return fmt.Errorf("generate digest: %w", err)
	}

	if s.notifier == nil {
		s.logger.Info("kpi digest", zap.String("text", text))
		return nil
	}

	if err := s.notifier.PostText(ctx, text); err != nil {
		return fmt.Errorf("deliver digest: %w", err)
	}

	s.logger.Info("kpi digest sent successfully")
	return nil
}

// cronLogger adapts zap to the logger interface expected by cron job wrappers.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
