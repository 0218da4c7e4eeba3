package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ParseDailySchedule reads the minute and hour fields of a cron expression
// such as "30 7 * * *". The remaining fields are ignored.
func ParseDailySchedule(cronExpr string) (hour, minute int, err error) {
	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("schedule %q needs minute and hour fields", cronExpr)
	}

	minute, err = strconv.Atoi(parts[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minute must be 0-59, got %q", parts[0])
	}
	hour, err = strconv.Atoi(parts[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("hour must be 0-23, got %q", parts[1])
	}
	return hour, minute, nil
}

// DailyTrigger submits its tasks to a Scheduler once a day at a fixed time
type DailyTrigger struct {
	hour          int
	minute        int
	checkInterval time.Duration
	scheduler     *Scheduler
	tasks         []Task
	logger        *zap.Logger
	now           func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyTrigger creates a trigger firing at the time named by cronExpr
func NewDailyTrigger(cronExpr string, scheduler *Scheduler, logger *zap.Logger, tasks ...Task) (*DailyTrigger, error) {
	hour, minute, err := ParseDailySchedule(cronExpr)
	if err != nil {
		return nil, err
	}
	return &DailyTrigger{
		hour:          hour,
		minute:        minute,
		checkInterval: 30 * time.Second,
		scheduler:     scheduler,
		tasks:         tasks,
		logger:        logger.Named("trigger"),
		now:           time.Now,
	}, nil
}

// Start starts checking the clock
func (t *DailyTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		return nil
	}
	t.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Daily trigger started",
		zap.String("at", fmt.Sprintf("%02d:%02d", t.hour, t.minute)),
		zap.Int("tasks", len(t.tasks)),
	)
	return nil
}

// Stop stops the trigger; already submitted jobs keep running
func (t *DailyTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.cancel()
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Daily trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRun returns the first firing time after from
func (t *DailyTrigger) NextRun(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), t.hour, t.minute, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (t *DailyTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndTrigger(t.now())
		}
	}
}

// checkAndTrigger fires at most once per calendar day
func (t *DailyTrigger) checkAndTrigger(now time.Time) bool {
	if now.Hour() != t.hour || now.Minute() != t.minute {
		return false
	}
	today := now.Format(time.DateOnly)

	t.mu.Lock()
	if t.lastRunDate == today {
		t.mu.Unlock()
		return false
	}
	t.lastRunDate = today
	t.mu.Unlock()

	t.Fire()
	return true
}

// Fire submits every task immediately
func (t *DailyTrigger) Fire() {
	for _, task := range t.tasks {
		if _, err := t.scheduler.Submit(task); err != nil {
			t.logger.Error("Failed to submit task",
				zap.String("task", task.Name()),
				zap.Error(err),
			)
		}
	}
}
