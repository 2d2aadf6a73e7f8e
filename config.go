package roster

import (
	"time"

	"go.uber.org/zap"
)

// InMemory as a path keeps the database in memory only.
const InMemory = ":memory:"

var defaultPersistenceIntervals = 1 * time.Second

type PersistenceStrategy string

const (
	// Sync writes the snapshot after every committed update.
	Sync PersistenceStrategy = "sync"
	// Async flushes changes on a timer and on close.
	Async PersistenceStrategy = "async"
)

type Config struct {
	PersistenceStrategy       PersistenceStrategy
	AsyncPersistenceIntervals time.Duration
	TruncateFileWhenOpen      bool
	Logger                    *zap.Logger
}

func (cfg *Config) applyTo(e *engine) {
	if cfg.PersistenceStrategy == "" {
		cfg.PersistenceStrategy = Sync
	}

	if cfg.PersistenceStrategy == Async && cfg.AsyncPersistenceIntervals <= 0 {
		cfg.AsyncPersistenceIntervals = defaultPersistenceIntervals
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	e.cfg = cfg
}
