package jsonstorage

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/denismitr/roster/internal/storage"
	"github.com/pkg/errors"
)

const ext = ".json"

var ErrSnapshotCorrupted = errors.New("snapshot file is corrupted")

// JSONStorage keeps a whole data set in one JSON file. Writes go to a
// temporary file first which then replaces the original.
type JSONStorage struct {
	mu       sync.RWMutex
	fullPath string
	tmpPath  string
}

func New(fullPath string) *JSONStorage {
	tmpPath := strings.TrimSuffix(fullPath, ext) + ".tmp"
	if tmpPath == fullPath {
		tmpPath += ".tmp"
	}

	return &JSONStorage{fullPath: fullPath, tmpPath: tmpPath}
}

func (s *JSONStorage) Path() string {
	return s.fullPath
}

func (s *JSONStorage) Exists() bool {
	return storage.FileExists(s.fullPath)
}

func (s *JSONStorage) Write(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmpF, tmpClose, err := storage.CreateFile(s.tmpPath, storage.DefaultFilePerm)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(tmpF).Encode(v); err != nil {
		_ = tmpClose()
		_ = os.Remove(s.tmpPath)
		return errors.Wrapf(err, "could not write to tmp file %s", s.tmpPath)
	}

	if err := tmpF.Sync(); err != nil {
		_ = tmpClose()
		_ = os.Remove(s.tmpPath)
		return errors.Wrapf(err, "could not sync tmp file %s", s.tmpPath)
	}

	if err := tmpClose(); err != nil {
		return errors.Wrapf(err, "could not close tmp file %s", s.tmpPath)
	}

	if err := os.Rename(s.tmpPath, s.fullPath); err != nil {
		_ = os.Remove(s.tmpPath)
		return errors.Wrapf(err, "could not replace %s with %s", s.fullPath, s.tmpPath)
	}

	return nil
}

// Read decodes the file into dest. An empty file leaves dest untouched.
func (s *JSONStorage) Read(dest interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, fClose, err := storage.OpenFile(s.fullPath)
	if err != nil {
		return err
	}

	defer fClose()

	size, err := storage.FileSize(f)
	if err != nil {
		return err
	}

	if size == 0 {
		return nil
	}

	b, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", s.fullPath)
	}

	if err := json.Unmarshal(b, dest); err != nil {
		return errors.Wrapf(ErrSnapshotCorrupted, "%s: %v", s.fullPath, err)
	}

	return nil
}
