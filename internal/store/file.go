package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileKV stores each collection as <dir>/<collection>.json. Writes go to a
// temp file first and are renamed into place; with a single writer that is
// enough to never leave a half-written document behind.
type FileKV struct {
	fs  afero.Fs
	dir string
}

// NewFileKV opens (and creates if needed) the data directory.
func NewFileKV(fs afero.Fs, dir string) (*FileKV, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileKV{fs: fs, dir: dir}, nil
}

func (f *FileKV) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

// Load reads one collection document. A missing file is ok=false, not an
// error.
func (f *FileKV) Load(ctx context.Context, collection string) ([]byte, bool, error) {
	data, err := afero.ReadFile(f.fs, f.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", collection, err)
	}
	return data, true, nil
}

// Save replaces one collection document.
func (f *FileKV) Save(ctx context.Context, collection string, data []byte) error {
	tmp := f.path(collection) + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := f.fs.Rename(tmp, f.path(collection)); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

// Reset removes the named collection documents.
func (f *FileKV) Reset(ctx context.Context, collections ...string) error {
	for _, collection := range collections {
		if err := f.fs.Remove(f.path(collection)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", collection, err)
		}
	}
	return nil
}
