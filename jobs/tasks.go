// Package jobs schedules and runs background work over Asynq: periodic
// dataset snapshots written to the backup directory.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskBackupSnapshot writes a timestamped export of the dataset.
	TaskBackupSnapshot = "backup:snapshot"
)

// BackupSnapshotPayload carries scheduling metadata.
type BackupSnapshotPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewBackupSnapshotTask constructs an Asynq task for a dataset snapshot.
func NewBackupSnapshotTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(BackupSnapshotPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBackupSnapshot, body, asynq.Queue(QueueDefault)), nil
}
