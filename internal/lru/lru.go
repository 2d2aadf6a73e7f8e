package lru

import (
	"container/list"
	"sync"
)

type lruShard struct {
	mu         sync.Mutex
	totalBytes uint64
	maxBytes   uint64
	evictList  *list.List
	elems      map[string]*list.Element
	onEvict    OnEvict
}

func newLruShard(maxBytes uint64, onEvict OnEvict) *lruShard {
	return &lruShard{
		maxBytes:  maxBytes,
		evictList: list.New(),
		elems:     make(map[string]*list.Element),
		onEvict:   onEvict,
	}
}

type entry struct {
	key   string
	value []byte
}

func (ls *lruShard) get(key string) ([]byte, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	elem, ok := ls.elems[key]
	if !ok {
		return nil, false
	}

	ls.evictList.MoveToFront(elem)
	return elem.Value.(*entry).value, true
}

// add stores value under key and reports whether older entries had to be
// evicted to make room for it.
func (ls *lruShard) add(key string, value []byte) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if elem, ok := ls.elems[key]; ok {
		ls.removeElementUnderLock(elem)
	}

	var evicted bool
	for ls.totalBytes+uint64(len(value)) > ls.maxBytes {
		evictedKey, evictedValue, ok := ls.removeOldestUnderLock()
		if !ok {
			break
		}

		evicted = true
		if ls.onEvict != nil {
			ls.onEvict(evictedKey, evictedValue)
		}
	}

	ls.elems[key] = ls.evictList.PushFront(&entry{key: key, value: value})
	ls.totalBytes += uint64(len(value))

	return evicted
}

func (ls *lruShard) purge() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.elems = make(map[string]*list.Element)
	ls.totalBytes = 0
	ls.evictList.Init()
}

func (ls *lruShard) remove(key string) ([]byte, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	elem, ok := ls.elems[key]
	if !ok {
		return nil, false
	}

	_, value := ls.removeElementUnderLock(elem)
	return value, true
}

func (ls *lruShard) removeOldestUnderLock() (string, []byte, bool) {
	elem := ls.evictList.Back()
	if elem == nil {
		return "", nil, false
	}

	k, v := ls.removeElementUnderLock(elem)
	return k, v, true
}

func (ls *lruShard) removeElementUnderLock(elem *list.Element) (string, []byte) {
	ls.evictList.Remove(elem)

	kv := elem.Value.(*entry)
	delete(ls.elems, kv.key)
	ls.totalBytes -= uint64(len(kv.value))
	return kv.key, kv.value
}

func (ls *lruShard) len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return len(ls.elems)
}

func (ls *lruShard) bytes() uint64 {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return ls.totalBytes
}

func (ls *lruShard) keys() []string {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	keys := make([]string, 0, len(ls.elems))
	for e := ls.evictList.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*entry).key)
	}
	return keys
}
