// Package lru is a byte bounded LRU cache split into shards picked by the
// xxhash of the key.
package lru

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

var ErrIllegalCapacity = errors.New("illegal lru cache capacity")
var ErrInvalidSharding = errors.New("invalid sharding")
var ErrValueTooLarge = errors.New("value does not fit into a cache shard")

type OnEvict func(k string, v []byte)

type Cache struct {
	shardMaxBytes uint64
	capacity      uint64
	shards        []*lruShard
}

// NewCache splits maxTotalBytes evenly between shards.
func NewCache(shards int, maxTotalBytes uint64, onEvict OnEvict) (*Cache, error) {
	if shards < 1 {
		return nil, ErrInvalidSharding
	}

	if maxTotalBytes < uint64(shards) {
		return nil, errors.Wrapf(ErrIllegalCapacity, "%d bytes for %d shards", maxTotalBytes, shards)
	}

	c := Cache{
		shardMaxBytes: maxTotalBytes / uint64(shards),
		capacity:      uint64(shards),
		shards:        make([]*lruShard, shards),
	}

	for i := range c.shards {
		c.shards[i] = newLruShard(c.shardMaxBytes, onEvict)
	}

	return &c, nil
}

// Add stores value under key and returns true if eviction happened.
func (c *Cache) Add(key string, value []byte) (bool, error) {
	if uint64(len(value)) > c.shardMaxBytes {
		return false, errors.Wrapf(ErrValueTooLarge, "%d bytes under %s", len(value), key)
	}

	return c.getShard(key).add(key, value), nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	return c.getShard(key).get(key)
}

func (c *Cache) Remove(key string) bool {
	_, ok := c.getShard(key).remove(key)
	return ok
}

func (c *Cache) Purge() {
	var wg sync.WaitGroup

	wg.Add(len(c.shards))
	for i := range c.shards {
		go func(i int) {
			defer wg.Done()
			c.shards[i].purge()
		}(i)
	}

	wg.Wait()
}

func (c *Cache) Count() int {
	var n int
	for i := range c.shards {
		n += c.shards[i].len()
	}
	return n
}

// Bytes is the total size of the cached values.
func (c *Cache) Bytes() uint64 {
	var n uint64
	for i := range c.shards {
		n += c.shards[i].bytes()
	}
	return n
}

// Keys lists cached keys shard by shard, most recently used first.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, c.Count())
	for i := range c.shards {
		keys = append(keys, c.shards[i].keys()...)
	}
	return keys
}

func (c *Cache) getShard(key string) *lruShard {
	return c.shards[xxhash.Sum64String(key)%c.capacity]
}
