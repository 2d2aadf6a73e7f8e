package roster

import (
	"context"
	"strconv"

	"github.com/denismitr/roster/internal/data"
	"github.com/pkg/errors"
	"github.com/tidwall/btree"
)

var ErrKeyAlreadyExists = errors.New("key already exists")
var ErrKeyDoesNotExist = errors.New("key does not exist in DB")

const castPanic = "how could primary keys item not be of type *entry"

type entryIterator func(ent *entry) bool

type engine struct {
	cfg   *Config
	pks   *btree.BTree
	seq   data.Sequences
	dirty bool
}

func newEngine(cfg *Config) *engine {
	e := &engine{
		pks: btree.NewNonConcurrent(byPrimaryKeys),
		seq: make(data.Sequences),
	}

	cfg.applyTo(e)

	return e
}

func (e *engine) insert(ent *entry) error {
	if existing := e.pks.Get(ent); existing != nil {
		return errors.Wrapf(ErrKeyAlreadyExists, "key %s", ent.key.String())
	}

	e.pks.Set(ent)
	e.observe(ent.key)

	return nil
}

// put inserts or replaces ent and returns the replaced entry, if any.
func (e *engine) put(ent *entry) *entry {
	existing := e.pks.Set(ent)
	e.observe(ent.key)
	if existing == nil {
		return nil
	}

	prev, ok := existing.(*entry)
	if !ok {
		panic(castPanic)
	}

	return prev
}

func (e *engine) findByKey(key string) (*entry, error) {
	found := e.pks.Get(&entry{key: newPK(key)})
	if found == nil {
		return nil, errors.Wrapf(ErrKeyDoesNotExist, "key %s", key)
	}

	ent, ok := found.(*entry)
	if !ok {
		panic(castPanic)
	}

	return ent, nil
}

func (e *engine) remove(key string) (*entry, error) {
	removed := e.pks.Delete(&entry{key: newPK(key)})
	if removed == nil {
		return nil, errors.Wrapf(ErrKeyDoesNotExist, "key %s", key)
	}

	ent, ok := removed.(*entry)
	if !ok {
		panic(castPanic)
	}

	return ent, nil
}

func (e *engine) count() int {
	return e.pks.Len()
}

// nextID issues the next numeric id of a collection. Ids are never reused,
// not even after a rolled back transaction.
func (e *engine) nextID(collection string) int {
	e.seq[collection]++
	return int(e.seq[collection])
}

// observe moves the collection sequence past explicitly chosen numeric ids.
func (e *engine) observe(pk PK) {
	if len(pk.segments) != 2 {
		return
	}

	id, err := strconv.ParseUint(pk.ID(), 10, 64)
	if err != nil {
		return
	}

	if id > e.seq[pk.Collection()] {
		e.seq[pk.Collection()] = id
	}
}

func (e *engine) snapshot() data.Snapshot {
	snap := data.Snapshot{
		Entries: make([]data.Entry, 0, e.pks.Len()),
		Seq:     make(data.Sequences, len(e.seq)),
	}

	e.pks.Ascend(nil, func(item interface{}) bool {
		ent := item.(*entry)
		snap.Entries = append(snap.Entries, data.Entry{Key: ent.key.String(), Value: ent.clone().value})
		return true
	})

	for k, v := range e.seq {
		snap.Seq[k] = v
	}

	return snap
}

func (e *engine) load(snap data.Snapshot) error {
	for i := range snap.Entries {
		if err := e.insert(newEntry(snap.Entries[i].Key, snap.Entries[i].Value)); err != nil {
			return errors.Wrap(err, "could not load snapshot")
		}
	}

	for k, v := range snap.Seq {
		if v > e.seq[k] {
			e.seq[k] = v
		}
	}

	return nil
}

func (e *engine) scanAscend(ctx context.Context, ir entryIterator) {
	e.pks.Ascend(nil, contextIterator(ctx, ir))
}

func (e *engine) scanDescend(ctx context.Context, ir entryIterator) {
	e.pks.Descend(nil, contextIterator(ctx, ir))
}

func (e *engine) scanPrefixAscend(ctx context.Context, prefix string, ir entryIterator) {
	p := newPK(prefix)
	it := contextIterator(ctx, ir)

	e.pks.Ascend(&entry{key: p}, func(item interface{}) bool {
		ent := item.(*entry)
		if !ent.key.HasPrefix(&p) {
			return false
		}
		return it(item)
	})
}

func (e *engine) scanPrefixDescend(ctx context.Context, prefix string, ir entryIterator) {
	p := newPK(prefix)
	it := contextIterator(ctx, ir)

	e.pks.Descend(nil, func(item interface{}) bool {
		ent := item.(*entry)
		if ent.key.HasPrefix(&p) {
			return it(item)
		}

		// keys sharing a prefix are contiguous, anything below it ends the scan
		return !ent.key.Less(p)
	})
}

// scanBetweenAscend visits keys in [from, to).
func (e *engine) scanBetweenAscend(ctx context.Context, from, to string, ir entryIterator) {
	ascendRange(e.pks, &entry{key: newPK(from)}, &entry{key: newPK(to)}, contextIterator(ctx, ir))
}

// scanBetweenDescend visits keys in [from, to) from the top.
func (e *engine) scanBetweenDescend(ctx context.Context, from, to string, ir entryIterator) {
	descendRange(e.pks, &entry{key: newPK(from)}, &entry{key: newPK(to)}, contextIterator(ctx, ir))
}

func contextIterator(ctx context.Context, ir entryIterator) func(item interface{}) bool {
	return func(item interface{}) bool {
		if ctx.Err() != nil {
			return false
		}

		ent, ok := item.(*entry)
		if !ok {
			panic(castPanic)
		}

		return ir(ent)
	}
}

func lt(tr *btree.BTree, a, b interface{}) bool { return tr.Less(a, b) }
func gt(tr *btree.BTree, a, b interface{}) bool { return tr.Less(b, a) }

func ascendRange(
	tr *btree.BTree,
	greaterOrEqual interface{},
	lessThan interface{},
	iter func(item interface{}) bool,
) {
	tr.Ascend(greaterOrEqual, func(item interface{}) bool {
		return lt(tr, item, lessThan) && iter(item)
	})
}

func descendRange(
	tr *btree.BTree,
	greaterOrEqual interface{},
	lessThan interface{},
	iter func(item interface{}) bool,
) {
	tr.Descend(lessThan, func(item interface{}) bool {
		if !lt(tr, item, lessThan) {
			return true
		}
		return !gt(tr, greaterOrEqual, item) && iter(item)
	})
}
