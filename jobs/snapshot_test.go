package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExporter struct {
	data []byte
	err  error
}

func (s stubExporter) ExportJSON(ctx context.Context) ([]byte, error) {
	return s.data, s.err
}

func TestSnapshotWriter_WritesTimestampedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := &SnapshotWriter{
		Exporter: stubExporter{data: []byte(`{"suppliers":[]}`)},
		FS:       fs,
		Dir:      "backups",
	}

	task, err := NewBackupSnapshotTask(time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, writer.Handle(context.Background(), task))

	entries, err := afero.ReadDir(fs, "backups")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^ordernow-\d{8}T\d{6}Z\.json$`, entries[0].Name())

	data, err := afero.ReadFile(fs, "backups/"+entries[0].Name())
	require.NoError(t, err)
	assert.JSONEq(t, `{"suppliers":[]}`, string(data))
}

func TestSnapshotWriter_ExportFailure(t *testing.T) {
	writer := &SnapshotWriter{
		Exporter: stubExporter{err: errors.New("store down")},
		FS:       afero.NewMemMapFs(),
		Dir:      "backups",
	}

	task, err := NewBackupSnapshotTask(time.Now().UTC())
	require.NoError(t, err)

	err = writer.Handle(context.Background(), task)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export snapshot")
}

func TestSnapshotWriter_BadPayloadSkipsRetry(t *testing.T) {
	writer := &SnapshotWriter{
		Exporter: stubExporter{data: []byte(`{}`)},
		FS:       afero.NewMemMapFs(),
		Dir:      "backups",
	}

	err := writer.Handle(context.Background(), asynq.NewTask(TaskBackupSnapshot, []byte("{broken")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}
