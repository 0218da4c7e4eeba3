package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type funcTask struct {
	name string
	fn   func(ctx context.Context) error
}

func (t funcTask) Name() string                  { return t.name }
func (t funcTask) Run(ctx context.Context) error { return t.fn(ctx) }

func countingTask(calls *atomic.Int32, failFirst int32) funcTask {
	return funcTask{name: "counting", fn: func(context.Context) error {
		if calls.Add(1) <= failFirst {
			return errors.New("transient failure")
		}
		return nil
	}}
}

func startScheduler(t *testing.T, cfg Config) *Scheduler {
	t.Helper()
	s := NewScheduler(cfg, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	return s
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(Config{}, zap.NewNop())

	def := DefaultConfig()
	assert.Equal(t, def.MaxConcurrentJobs, s.config.MaxConcurrentJobs)
	assert.Equal(t, def.JobTimeout, s.config.JobTimeout)
	assert.Equal(t, def.RetryDelay, s.config.RetryDelay)
	assert.Equal(t, def.QueueSize, s.config.QueueSize)
}

func TestScheduler_RunsSubmittedTask(t *testing.T) {
	s := startScheduler(t, DefaultConfig())
	var calls atomic.Int32

	job, err := s.Submit(countingTask(&calls, 0))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, job.ID)

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_RetriesFailedTask(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryAttempts = 2
	cfg.RetryDelay = 10 * time.Millisecond
	s := startScheduler(t, cfg)
	var calls atomic.Int32

	_, err := s.Submit(countingTask(&calls, 2))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return calls.Load() == 3 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
}

func TestScheduler_GivesUpAfterRetries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryAttempts = 1
	cfg.RetryDelay = 5 * time.Millisecond
	s := startScheduler(t, cfg)
	var calls atomic.Int32

	_, err := s.Submit(countingTask(&calls, 10))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_RecoversPanics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConcurrentJobs = 1
	cfg.RetryAttempts = 0
	s := startScheduler(t, cfg)
	var calls atomic.Int32

	_, err := s.Submit(funcTask{name: "panics", fn: func(context.Context) error { panic("boom") }})
	require.NoError(t, err)
	_, err = s.Submit(countingTask(&calls, 0))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_JobTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JobTimeout = 20 * time.Millisecond
	cfg.RetryAttempts = 0
	s := startScheduler(t, cfg)
	result := make(chan error, 1)

	_, err := s.Submit(funcTask{name: "slow", fn: func(ctx context.Context) error {
		<-ctx.Done()
		result <- ctx.Err()
		return ctx.Err()
	}})
	require.NoError(t, err)

	select {
	case err := <-result:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("task was not cancelled")
	}
}

func TestScheduler_NotRunning(t *testing.T) {
	s := NewScheduler(DefaultConfig(), zap.NewNop())
	var calls atomic.Int32

	_, err := s.Submit(countingTask(&calls, 0))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))

	_, err = s.Submit(countingTask(&calls, 0))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestScheduler_QueueFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConcurrentJobs = 1
	cfg.QueueSize = 1
	s := startScheduler(t, cfg)

	release := make(chan struct{})
	started := make(chan struct{})
	_, err := s.Submit(funcTask{name: "blocking", fn: func(ctx context.Context) error {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}})
	require.NoError(t, err)
	<-started

	var calls atomic.Int32
	_, err = s.Submit(countingTask(&calls, 0))
	require.NoError(t, err)
	_, err = s.Submit(countingTask(&calls, 0))
	assert.ErrorIs(t, err, ErrJobQueueFull)

	close(release)
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestParseDailySchedule(t *testing.T) {
	tests := []struct {
		name       string
		cronExpr   string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "7am", cronExpr: "0 7 * * *", wantHour: 7, wantMinute: 0},
		{name: "half past six pm", cronExpr: "30 18 * * *", wantHour: 18, wantMinute: 30},
		{name: "extra whitespace", cronExpr: "  15   4   *   *   *  ", wantHour: 4, wantMinute: 15},
		{name: "only two fields", cronExpr: "5 0", wantHour: 0, wantMinute: 5},
		{name: "empty", cronExpr: "", wantErr: true},
		{name: "wildcard minute", cronExpr: "* 7 * * *", wantErr: true},
		{name: "hour out of range", cronExpr: "0 24 * * *", wantErr: true},
		{name: "minute out of range", cronExpr: "60 1 * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseDailySchedule(tt.cronExpr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour, "hour mismatch")
			assert.Equal(t, tt.wantMinute, minute, "minute mismatch")
		})
	}
}

func TestDailyTrigger_NextRun(t *testing.T) {
	trigger, err := NewDailyTrigger("30 7 * * *", NewScheduler(DefaultConfig(), zap.NewNop()), zap.NewNop())
	require.NoError(t, err)

	before := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC), trigger.NextRun(before))

	exact := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 11, 7, 30, 0, 0, time.UTC), trigger.NextRun(exact))
}

func TestDailyTrigger_FiresOncePerDay(t *testing.T) {
	s := startScheduler(t, DefaultConfig())
	var calls atomic.Int32
	trigger, err := NewDailyTrigger("30 7 * * *", s, zap.NewNop(), countingTask(&calls, 0))
	require.NoError(t, err)

	assert.False(t, trigger.checkAndTrigger(time.Date(2026, 3, 10, 7, 29, 0, 0, time.UTC)))
	assert.True(t, trigger.checkAndTrigger(time.Date(2026, 3, 10, 7, 30, 5, 0, time.UTC)))
	assert.False(t, trigger.checkAndTrigger(time.Date(2026, 3, 10, 7, 30, 35, 0, time.UTC)))
	assert.True(t, trigger.checkAndTrigger(time.Date(2026, 3, 11, 7, 30, 0, 0, time.UTC)))

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDailyTrigger_RejectsBadSchedule(t *testing.T) {
	_, err := NewDailyTrigger("every morning", NewScheduler(DefaultConfig(), zap.NewNop()), zap.NewNop())
	assert.Error(t, err)
}

func TestDailyTrigger_StartStop(t *testing.T) {
	trigger, err := NewDailyTrigger("0 7 * * *", NewScheduler(DefaultConfig(), zap.NewNop()), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Stop(context.Background()))
	require.NoError(t, trigger.Stop(context.Background()))
}
