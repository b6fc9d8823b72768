package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

func newTestScheduler(t *testing.T, job ScanJob) *Scheduler {
	t.Helper()
	s, err := New(config.SchedulerConfig{
		Enabled:           true,
		DailyCronSchedule: "0 2 * * *",
		JobTimeout:        time.Minute,
	}, job, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestParseDailySchedule(t *testing.T) {
	tests := []struct {
		schedule string
		hour     int
		minute   int
		wantErr  bool
	}{
		{"0 2 * * *", 2, 0, false},
		{"30 23 * * *", 23, 30, false},
		{"15 0 * * *", 0, 15, false},
		{"60 2 * * *", 0, 0, true},
		{"0 24 * * *", 0, 0, true},
		{"0 2 * *", 0, 0, true},
		{"0 2 1 * *", 0, 0, true},
		{"x 2 * * *", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			hour, minute, err := parseDailySchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestScheduler_NextRun(t *testing.T) {
	s := newTestScheduler(t, ScanJobFunc(func(ctx context.Context) error { return nil }))

	t.Run("later today when before fire time", func(t *testing.T) {
		after := time.Date(2026, 1, 10, 1, 0, 0, 0, time.UTC)
		next := s.NextRun(after)
		assert.Equal(t, time.Date(2026, 1, 10, 2, 0, 0, 0, time.UTC), next)
	})

	t.Run("tomorrow when past fire time", func(t *testing.T) {
		after := time.Date(2026, 1, 10, 2, 30, 0, 0, time.UTC)
		next := s.NextRun(after)
		assert.Equal(t, time.Date(2026, 1, 11, 2, 0, 0, 0, time.UTC), next)
	})

	t.Run("tomorrow when exactly at fire time", func(t *testing.T) {
		after := time.Date(2026, 1, 10, 2, 0, 0, 0, time.UTC)
		next := s.NextRun(after)
		assert.Equal(t, time.Date(2026, 1, 11, 2, 0, 0, 0, time.UTC), next)
	})
}

func TestScheduler_TriggerNow(t *testing.T) {
	t.Run("runs the scan when started", func(t *testing.T) {
		var runs atomic.Int32
		s := newTestScheduler(t, ScanJobFunc(func(ctx context.Context) error {
			runs.Add(1)
			return nil
		}))

		ctx := context.Background()
		require.NoError(t, s.Start(ctx))
		defer func() { _ = s.Stop(ctx) }()

		require.NoError(t, s.TriggerNow(ctx))
		assert.Equal(t, int32(1), runs.Load())
	})

	t.Run("fails when not running", func(t *testing.T) {
		s := newTestScheduler(t, ScanJobFunc(func(ctx context.Context) error { return nil }))
		err := s.TriggerNow(context.Background())
		assert.Equal(t, ErrSchedulerNotRunning, err)
	})

	t.Run("scan errors do not propagate", func(t *testing.T) {
		s := newTestScheduler(t, ScanJobFunc(func(ctx context.Context) error {
			return errors.New("database down")
		}))

		ctx := context.Background()
		require.NoError(t, s.Start(ctx))
		defer func() { _ = s.Stop(ctx) }()

		assert.NoError(t, s.TriggerNow(ctx))
	})
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(t, ScanJobFunc(func(ctx context.Context) error { return nil }))
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	// Idempotent start
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.Stop(ctx))
	// Idempotent stop
	require.NoError(t, s.Stop(ctx))
}

func TestNew_RejectsBadSchedule(t *testing.T) {
	_, err := New(config.SchedulerConfig{
		DailyCronSchedule: "every day at noon",
		JobTimeout:        time.Minute,
	}, ScanJobFunc(func(ctx context.Context) error { return nil }), zap.NewNop())
	assert.Error(t, err)
}
