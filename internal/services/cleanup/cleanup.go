package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper is the part of the transient store the cleanup service drives
type Sweeper interface {
	Sweep(maxAge time.Duration) (int, error)
}

// Service removes orphaned transient files on a cron schedule
type Service struct {
	sweeper  Sweeper
	maxAge   time.Duration
	schedule string
	logger   zerolog.Logger
	cron     *cron.Cron
}

// NewService creates a new cleanup service. schedule is any robfig/cron spec,
// including descriptors such as "@every 15m".
func NewService(sweeper Sweeper, maxAge time.Duration, schedule string, logger zerolog.Logger) *Service {
	return &Service{
		sweeper:  sweeper,
		maxAge:   maxAge,
		schedule: schedule,
		logger:   logger.With().Str("component", "cleanup").Logger(),
	}
}

// Start runs one sweep immediately and then schedules the rest. The service
// stops when ctx is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	c := cron.New(cron.WithLogger(cronLogger{s.logger}))
	if _, err := c.AddFunc(s.schedule, s.RunOnce); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.schedule, err)
	}
	s.cron = c

	s.RunOnce()
	c.Start()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info().Str("schedule", s.schedule).Dur("max_age", s.maxAge).Msg("cleanup service started")
	return nil
}

// Stop stops the schedule and waits for a running sweep to finish
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// RunOnce performs a single sweep
func (s *Service) RunOnce() {
	removed, err := s.sweeper.Sweep(s.maxAge)
	if err != nil {
		s.logger.Error().Err(err).Msg("cleanup sweep failed")
		return
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("removed stale temp files")
	}
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

var _ cron.Logger = cronLogger{}
