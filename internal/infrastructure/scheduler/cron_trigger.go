package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantProvider lists the tenants the daily run covers
type TenantProvider interface {
	ActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// JobSubmitter accepts one job per tenant
type JobSubmitter interface {
	Submit(tenantID uuid.UUID) (*Job, error)
}

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	Hour   int
	Minute int
	// CheckInterval is how often the clock is compared against Hour:Minute
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		Hour:          8,
		Minute:        0,
		CheckInterval: time.Minute,
	}
}

// ParseCronSchedule reads minute and hour from a "M H * * *" expression.
// Only the daily form is supported; an empty expression yields 08:00.
func ParseCronSchedule(expr string) (hour, minute int, err error) {
	hour, minute = 8, 0
	parts := strings.Fields(expr)
	if len(parts) == 0 {
		return hour, minute, nil
	}
	if len(parts) != 5 {
		return 0, 0, fmt.Errorf("%w: cron expression needs 5 fields, got %d", ErrInvalidConfig, len(parts))
	}
	for _, p := range parts[2:] {
		if p != "*" {
			return 0, 0, fmt.Errorf("%w: only daily schedules are supported", ErrInvalidConfig)
		}
	}
	if minute, err = strconv.Atoi(parts[0]); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute must be 0-59, got %q", ErrInvalidConfig, parts[0])
	}
	if hour, err = strconv.Atoi(parts[1]); err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour must be 0-23, got %q", ErrInvalidConfig, parts[1])
	}
	return hour, minute, nil
}

// CronTrigger submits one reminder job per active tenant once a day
type CronTrigger struct {
	config    CronTriggerConfig
	submitter JobSubmitter
	tenants   TenantProvider
	logger    *zap.Logger
	now       func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(cfg CronTriggerConfig, submitter JobSubmitter, tenants TenantProvider, logger *zap.Logger) *CronTrigger {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronTrigger{
		config:    cfg,
		submitter: submitter,
		tenants:   tenants,
		logger:    logger,
		now:       time.Now,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isRunning {
		return nil
	}
	c.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Reminder cron trigger started",
		zap.String("time", fmt.Sprintf("%02d:%02d", c.config.Hour, c.config.Minute)),
		zap.Duration("check_interval", c.config.CheckInterval),
	)
	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.cancel()
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Reminder cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger fires at most once per calendar day, on or after the
// configured time
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now()
	today := now.Format("2006-01-02")

	c.mu.Lock()
	if c.lastRunDate == today {
		c.mu.Unlock()
		return false
	}
	due := now.Hour() > c.config.Hour || (now.Hour() == c.config.Hour && now.Minute() >= c.config.Minute)
	if !due {
		c.mu.Unlock()
		return false
	}
	c.lastRunDate = today
	c.mu.Unlock()

	c.logger.Info("Triggering daily reminder dispatch")
	if _, err := c.TriggerNow(ctx); err != nil {
		c.logger.Error("Daily reminder dispatch failed to start", zap.Error(err))
	}
	return true
}

// TriggerNow submits a job for every active tenant and returns how many
// were queued
func (c *CronTrigger) TriggerNow(ctx context.Context) (int, error) {
	tenantIDs, err := c.tenants.ActiveTenantIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active tenants: %w", err)
	}

	queued := 0
	for _, tenantID := range tenantIDs {
		if _, err := c.submitter.Submit(tenantID); err != nil {
			c.logger.Error("Failed to schedule reminders for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		queued++
	}
	c.logger.Info("Scheduled reminder dispatch",
		zap.Int("tenant_count", len(tenantIDs)),
		zap.Int("queued", queued),
	)
	return queued, nil
}
