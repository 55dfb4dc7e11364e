package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/paymentflow/backend/internal/infrastructure/config"
)

type funcExecutor func(ctx context.Context, job *Job) error

func (f funcExecutor) Execute(ctx context.Context, job *Job) error { return f(ctx, job) }

func testConfig() SchedulerConfig {
	return SchedulerConfig{
		MaxConcurrentJobs: 2,
		QueueSize:         4,
		JobTimeout:        time.Second,
		RetryAttempts:     2,
		RetryDelay:        10 * time.Millisecond,
	}
}

func startScheduler(t *testing.T, cfg SchedulerConfig, exec JobExecutor) (*Scheduler, chan *Job) {
	t.Helper()
	s, err := NewScheduler(cfg, exec, zaptest.NewLogger(t))
	require.NoError(t, err)
	done := make(chan *Job, 16)
	s.onDone = func(j *Job) { done <- j }
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s, done
}

func waitJob(t *testing.T, done chan *Job) *Job {
	t.Helper()
	select {
	case j := <-done:
		return j
	case <-time.After(2 * time.Second):
		t.Fatal("job did not finish")
		return nil
	}
}

func TestScheduler_RunsJob(t *testing.T) {
	tenantID := uuid.New()
	var got atomic.Value
	s, done := startScheduler(t, testConfig(), funcExecutor(func(_ context.Context, job *Job) error {
		got.Store(job.TenantID)
		return nil
	}))

	job, err := s.Submit(tenantID)
	require.NoError(t, err)

	finished := waitJob(t, done)
	assert.Equal(t, job.ID, finished.ID)
	assert.Equal(t, JobStatusSuccess, finished.Status)
	assert.Equal(t, tenantID, got.Load())
	assert.NotNil(t, finished.StartedAt)
	assert.NotNil(t, finished.CompletedAt)
}

func TestScheduler_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	s, done := startScheduler(t, testConfig(), funcExecutor(func(context.Context, *Job) error {
		if calls.Add(1) < 3 {
			return errors.New("smtp down")
		}
		return nil
	}))

	_, err := s.Submit(uuid.New())
	require.NoError(t, err)

	finished := waitJob(t, done)
	assert.Equal(t, JobStatusSuccess, finished.Status)
	assert.Equal(t, 2, finished.RetryCount)
	assert.Equal(t, int32(3), calls.Load())
}

func TestScheduler_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	s, done := startScheduler(t, testConfig(), funcExecutor(func(context.Context, *Job) error {
		calls.Add(1)
		return errors.New("database unavailable")
	}))

	_, err := s.Submit(uuid.New())
	require.NoError(t, err)

	finished := waitJob(t, done)
	assert.Equal(t, JobStatusFailed, finished.Status)
	assert.Equal(t, "database unavailable", finished.Error)
	assert.Equal(t, int32(3), calls.Load())
}

func TestScheduler_JobTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.JobTimeout = 20 * time.Millisecond
	cfg.RetryAttempts = 0
	s, done := startScheduler(t, cfg, funcExecutor(func(ctx context.Context, _ *Job) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	_, err := s.Submit(uuid.New())
	require.NoError(t, err)

	finished := waitJob(t, done)
	assert.Equal(t, JobStatusFailed, finished.Status)
	assert.Contains(t, finished.Error, "deadline exceeded")
}

func TestScheduler_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxConcurrentJobs = 1
	cfg.QueueSize = 1

	release := make(chan struct{})
	started := make(chan struct{}, 4)
	s, _ := startScheduler(t, cfg, funcExecutor(func(context.Context, *Job) error {
		started <- struct{}{}
		<-release
		return nil
	}))
	defer close(release)

	_, err := s.Submit(uuid.New())
	require.NoError(t, err)
	<-started

	_, err = s.Submit(uuid.New())
	require.NoError(t, err)
	_, err = s.Submit(uuid.New())
	assert.ErrorIs(t, err, ErrJobQueueFull)
}

func TestScheduler_NotRunning(t *testing.T) {
	s, err := NewScheduler(testConfig(), funcExecutor(func(context.Context, *Job) error { return nil }), nil)
	require.NoError(t, err)

	_, err = s.Submit(uuid.New())
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	require.NoError(t, s.Stop(context.Background()))
	assert.False(t, s.IsRunning())

	_, err = s.Submit(uuid.New())
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
	assert.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StopCancelsRunningJobs(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	s, err := NewScheduler(testConfig(), funcExecutor(func(ctx context.Context, _ *Job) error {
		wg.Done()
		<-ctx.Done()
		return ctx.Err()
	}), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	_, err = s.Submit(uuid.New())
	require.NoError(t, err)
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestSchedulerConfig(t *testing.T) {
	assert.NoError(t, DefaultSchedulerConfig().Validate())

	cfg := DefaultSchedulerConfig()
	cfg.MaxConcurrentJobs = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	_, err := NewScheduler(cfg, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	mapped := ConfigFrom(config.SchedulerConfig{MaxConcurrentJobs: 7, RetryAttempts: 1, RetryDelay: time.Second})
	assert.Equal(t, 7, mapped.MaxConcurrentJobs)
	assert.Equal(t, 1, mapped.RetryAttempts)
	assert.Equal(t, time.Second, mapped.RetryDelay)
	assert.Equal(t, DefaultSchedulerConfig().JobTimeout, mapped.JobTimeout)
}
