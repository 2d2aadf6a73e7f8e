package roster

import (
	"os"

	"github.com/denismitr/roster/internal/data"
	"github.com/denismitr/roster/internal/storage/jsonstorage"
	"github.com/pkg/errors"
)

var ErrStorageFailed = errors.New("storage error")

type persistence struct {
	strategy PersistenceStrategy
	s        *jsonstorage.JSONStorage
}

func newPersistence(path string, cfg *Config) (*persistence, error) {
	s := jsonstorage.New(path)

	if cfg.TruncateFileWhenOpen && s.Exists() {
		if err := os.Remove(path); err != nil {
			return nil, errors.Wrapf(ErrStorageFailed, "could not truncate %s: %v", path, err)
		}
	}

	return &persistence{strategy: cfg.PersistenceStrategy, s: s}, nil
}

func (p *persistence) load(e *engine) error {
	if !p.s.Exists() {
		return nil
	}

	var snap data.Snapshot
	if err := p.s.Read(&snap); err != nil {
		return errors.Wrapf(ErrStorageFailed, "could not read %s: %v", p.s.Path(), err)
	}

	return e.load(snap)
}

func (p *persistence) save(snap data.Snapshot) error {
	if err := p.s.Write(snap); err != nil {
		return errors.Wrapf(ErrStorageFailed, "%v", err)
	}

	return nil
}
