package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/afero"
)

// Exporter produces the dataset export document.
type Exporter interface {
	ExportJSON(ctx context.Context) ([]byte, error)
}

// SnapshotWriter handles backup:snapshot tasks by writing the current
// export to a timestamped file under Dir.
type SnapshotWriter struct {
	Exporter Exporter
	FS       afero.Fs
	Dir      string
	Logger   *slog.Logger
}

// Handle processes a TaskBackupSnapshot task.
func (s *SnapshotWriter) Handle(ctx context.Context, t *asynq.Task) error {
	var payload BackupSnapshotPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	data, err := s.Exporter.ExportJSON(ctx)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	if err := s.FS.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	name := filepath.Join(s.Dir, "ordernow-"+time.Now().UTC().Format("20060102T150405Z")+".json")
	if err := afero.WriteFile(s.FS, name, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("backup snapshot written",
			slog.String("file", name),
			slog.Int("bytes", len(data)))
	}
	return nil
}
