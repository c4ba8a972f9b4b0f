package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeMaintenanceSweep prunes expired sessions and orphaned grants.
	TaskTypeMaintenanceSweep = "maintenance:sweep"
)

// NewMaintenanceSweepTask constructs the nightly maintenance task.
func NewMaintenanceSweepTask() *asynq.Task {
	return asynq.NewTask(TaskTypeMaintenanceSweep, nil)
}
