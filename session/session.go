// Package session keeps logged in users between CLI invocations and
// dashboard calls.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/denismitr/roster/internal/lru"
	"github.com/denismitr/roster/model"
	"github.com/google/uuid"
	"github.com/pbnjay/memory"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	minCacheBytes uint64 = 1 << 20
	maxCacheBytes uint64 = 64 << 20
	defaultShards        = 4
)

type Session struct {
	Token     string     `json:"token"`
	User      model.User `json:"user"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// New opens a session for u under a fresh random token.
func New(u model.User, role model.Role, now time.Time) *Session {
	u.Password = nil

	return &Session{
		Token:     uuid.NewString(),
		User:      u,
		Role:      role,
		CreatedAt: now,
	}
}

// Store persists sessions by token.
type Store interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type Config struct {
	MaxBytes uint64
	Shards   int
	Logger   *zap.Logger
}

func (cfg *Config) applyTo(cs *CacheStore) {
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultBudget(memory.TotalMemory())
	}

	if cfg.Shards < 1 {
		cfg.Shards = defaultShards
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	cs.log = cfg.Logger
}

// DefaultBudget reserves a thousandth of total memory for sessions, kept
// between 1 MiB and 64 MiB.
func DefaultBudget(total uint64) uint64 {
	b := total / 1000
	if b < minCacheBytes {
		return minCacheBytes
	}
	if b > maxCacheBytes {
		return maxCacheBytes
	}
	return b
}

// CacheStore keeps JSON encoded sessions in a byte bounded LRU cache, so
// the oldest idle sessions are the first to go.
type CacheStore struct {
	c   *lru.Cache
	log *zap.Logger
}

func NewCacheStore(cfgs ...*Config) (*CacheStore, error) {
	cfg := &Config{}
	if len(cfgs) > 0 && cfgs[0] != nil {
		c := *cfgs[0]
		cfg = &c
	}

	cs := &CacheStore{}
	cfg.applyTo(cs)

	c, err := lru.NewCache(cfg.Shards, cfg.MaxBytes, func(token string, _ []byte) {
		cs.log.Debug("session evicted", zap.String("token", token))
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create session cache")
	}

	cs.c = c
	return cs, nil
}

func (cs *CacheStore) Put(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(s)
	if err != nil {
		return errors.Wrapf(err, "could not encode session %s", s.Token)
	}

	if _, err := cs.c.Add(s.Token, b); err != nil {
		return errors.Wrapf(err, "could not store session %s", s.Token)
	}

	return nil
}

func (cs *CacheStore) Get(ctx context.Context, token string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, ok := cs.c.Get(token)
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "token %s", token)
	}

	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, errors.Wrapf(err, "could not decode session %s", token)
	}

	return &s, nil
}

func (cs *CacheStore) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !cs.c.Remove(token) {
		return errors.Wrapf(ErrSessionNotFound, "token %s", token)
	}

	return nil
}

// Len is the number of live sessions.
func (cs *CacheStore) Len() int {
	return cs.c.Count()
}

var _ Store = (*CacheStore)(nil)
