package scheduler

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/application/notification"
)

// ReminderDispatcher sends the due reminders of one tenant
type ReminderDispatcher interface {
	Dispatch(ctx context.Context, tenantID uuid.UUID) (*notification.DispatchResult, error)
}

// DispatchObserver records dispatch results
type DispatchObserver interface {
	ObserveDispatch(sent, failed int, err error)
}

// ReminderExecutor runs reminder jobs through the dispatcher
type ReminderExecutor struct {
	dispatcher ReminderDispatcher
	observer   DispatchObserver
	logger     *zap.Logger
}

// NewReminderExecutor creates a new executor; observer may be nil
func NewReminderExecutor(dispatcher ReminderDispatcher, observer DispatchObserver, logger *zap.Logger) *ReminderExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderExecutor{dispatcher: dispatcher, observer: observer, logger: logger}
}

// Execute implements JobExecutor
func (e *ReminderExecutor) Execute(ctx context.Context, job *Job) error {
	result, err := e.dispatcher.Dispatch(ctx, job.TenantID)
	if err != nil {
		if e.observer != nil {
			e.observer.ObserveDispatch(0, 0, err)
		}
		return err
	}
	if e.observer != nil {
		e.observer.ObserveDispatch(result.Sent, result.Failed, nil)
	}
	e.logger.Debug("Reminder job finished",
		zap.String("job_id", job.ID.String()),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
	)
	return nil
}
