// Package roster is a small embedded document store for scheduling data:
// users, shifts, notes and announcements kept under segmented keys such as
// "shift:12", ordered in a b-tree and persisted as a JSON snapshot.
package roster

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrDatabaseAlreadyClosed = errors.New("database already closed")

type DB struct {
	e      *engine
	p      *persistence
	mu     sync.RWMutex
	closed bool
	stopCh chan struct{}
	wg     sync.WaitGroup
	log    *zap.Logger
}

type UserCallback func(tx *Tx) error

type Closer func() error

func NullCloser() error { return nil }

// Open loads the database stored at path, or keeps it in memory when path
// is InMemory.
func Open(path string, cfgs ...*Config) (*DB, Closer, error) {
	cfg := &Config{}
	if len(cfgs) > 0 && cfgs[0] != nil {
		c := *cfgs[0]
		cfg = &c
	}

	e := newEngine(cfg)
	db := &DB{
		e:      e,
		stopCh: make(chan struct{}),
		log:    cfg.Logger.With(zap.String("db", path)),
	}

	if path != InMemory {
		p, err := newPersistence(path, cfg)
		if err != nil {
			return nil, NullCloser, err
		}

		if err := p.load(e); err != nil {
			return nil, NullCloser, errors.Wrapf(err, "could not open database %s", path)
		}

		db.p = p
		db.log.Debug("database loaded", zap.Int("documents", e.count()))

		if cfg.PersistenceStrategy == Async {
			db.wg.Add(1)
			go db.asyncFlush(cfg.AsyncPersistenceIntervals)
		}
	}

	return db, db.close, nil
}

func (db *DB) asyncFlush(d time.Duration) {
	defer db.wg.Done()

	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-db.stopCh:
			return
		case <-t.C:
			if err := db.flush(); err != nil {
				db.log.Error("async flush failed", zap.Error(err))
			}
		}
	}
}

func (db *DB) flush() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.flushUnderLock()
}

func (db *DB) flushUnderLock() error {
	if db.p == nil || !db.e.dirty {
		return nil
	}

	if err := db.p.save(db.e.snapshot()); err != nil {
		return err
	}

	db.e.dirty = false
	return nil
}

func (db *DB) close() error {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return ErrDatabaseAlreadyClosed
	}

	db.closed = true
	close(db.stopCh)
	db.mu.Unlock()

	db.wg.Wait()

	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.flushUnderLock(); err != nil {
		return errors.Wrap(err, "could not flush on close")
	}

	db.log.Debug("database closed")
	return nil
}

func (db *DB) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.e.count()
}

func (db *DB) View(ctx context.Context, cb UserCallback) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return ErrDatabaseAlreadyClosed
	}

	tx := newTx(db.e, true)
	if err := cb(tx); err != nil {
		return errors.Wrap(err, "db read failed")
	}

	return nil
}

// Update runs cb in a read-write transaction. Any error returned by cb
// rolls back every change cb made.
func (db *DB) Update(ctx context.Context, cb UserCallback) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrDatabaseAlreadyClosed
	}

	tx := newTx(db.e, false)
	if err := cb(tx); err != nil {
		tx.rollback()
		return errors.Wrap(err, "db write failed. rolled back")
	}

	if !tx.modified() {
		return nil
	}

	db.e.dirty = true
	if db.p == nil {
		db.e.dirty = false
		return nil
	}

	if db.p.strategy == Sync {
		if err := db.flushUnderLock(); err != nil {
			tx.rollback()
			return errors.Wrap(err, "db write failed. rolled back")
		}
	}

	return nil
}
