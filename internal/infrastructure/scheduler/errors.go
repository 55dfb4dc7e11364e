package scheduler

import "errors"

// Sentinel errors returned by Scheduler and ParseCronSchedule
var (
	ErrSchedulerNotRunning = errors.New("reminder scheduler is not running")
	ErrJobQueueFull        = errors.New("reminder job queue is full")
	ErrInvalidConfig       = errors.New("invalid reminder scheduler configuration")
)
