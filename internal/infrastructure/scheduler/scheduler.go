package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrSchedulerNotRunning is returned when a scan is triggered on a
// stopped scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// ScanJob is the work the scheduler triggers once a day. The expiration
// service implements it.
type ScanJob interface {
	Run(ctx context.Context) error
}

// ScanJobFunc adapts a function to the ScanJob interface
type ScanJobFunc func(ctx context.Context) error

// Run calls the wrapped function
func (f ScanJobFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Scheduler fires the expiration scan at a fixed local time every day.
// The schedule is a restricted cron expression: only the minute and hour
// fields are honored, the job runs daily.
type Scheduler struct {
	job        ScanJob
	logger     *zap.Logger
	hour       int
	minute     int
	jobTimeout time.Duration

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// New creates a scheduler from the application configuration
func New(cfg config.SchedulerConfig, job ScanJob, logger *zap.Logger) (*Scheduler, error) {
	hour, minute, err := parseDailySchedule(cfg.DailyCronSchedule)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		job:        job,
		logger:     logger,
		hour:       hour,
		minute:     minute,
		jobTimeout: cfg.JobTimeout,
	}, nil
}

// parseDailySchedule accepts a five-field cron line of the form
// "M H * * *" and returns the daily fire time
func parseDailySchedule(schedule string) (hour, minute int, err error) {
	fields := strings.Fields(schedule)
	if len(fields) != 5 {
		return 0, 0, fmt.Errorf("invalid schedule %q: expected 5 cron fields", schedule)
	}

	minute, err = strconv.Atoi(fields[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid schedule %q: bad minute field", schedule)
	}
	hour, err = strconv.Atoi(fields[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid schedule %q: bad hour field", schedule)
	}
	for _, field := range fields[2:] {
		if field != "*" {
			return 0, 0, fmt.Errorf("invalid schedule %q: only daily schedules are supported", schedule)
		}
	}
	return hour, minute, nil
}

// Start launches the daily loop
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Expiration scheduler started",
		zap.Int("hour", s.hour),
		zap.Int("minute", s.minute),
		zap.Duration("job_timeout", s.jobTimeout),
	)
	return nil
}

// Stop halts the loop and waits for an in-flight scan to finish
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Expiration scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Expiration scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerNow runs one scan immediately, outside the daily schedule
func (s *Scheduler) TriggerNow(ctx context.Context) error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}

	s.runScan(ctx)
	return nil
}

// NextRun returns the next scheduled fire time after the given instant
func (s *Scheduler) NextRun(after time.Time) time.Time {
	next := time.Date(after.Year(), after.Month(), after.Day(), s.hour, s.minute, 0, 0, after.Location())
	if !next.After(after) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	for {
		next := s.NextRun(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runScan(ctx)
		}
	}
}

func (s *Scheduler) runScan(ctx context.Context) {
	jobCtx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	started := time.Now()
	if err := s.job.Run(jobCtx); err != nil {
		s.logger.Error("Expiration scan failed",
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Expiration scan completed",
		zap.Duration("elapsed", time.Since(started)),
	)
}
