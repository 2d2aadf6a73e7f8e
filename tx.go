package roster

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrTxIsReadOnly = errors.New("transaction is read only")
var ErrDocumentIsNotAnObject = errors.New("document is not a json object")

type Tx struct {
	e        *engine
	readOnly bool
	undo     []func()
}

func newTx(e *engine, readOnly bool) *Tx {
	return &Tx{e: e, readOnly: readOnly}
}

func (x *Tx) Get(key string) (*Document, error) {
	ent, err := x.e.findByKey(key)
	if err != nil {
		return nil, err
	}

	return newDocumentFromEntry(ent), nil
}

func (x *Tx) Exists(key string) bool {
	_, err := x.e.findByKey(key)
	return err == nil
}

func (x *Tx) Insert(key string, data interface{}) error {
	if x.readOnly {
		return ErrTxIsReadOnly
	}

	v, err := serializeToValue(data)
	if err != nil {
		return err
	}

	ent := newEntry(key, v)
	if err := x.e.insert(ent); err != nil {
		return err
	}

	x.undo = append(x.undo, func() {
		x.e.pks.Delete(ent)
	})

	return nil
}

func (x *Tx) InsertOrReplace(key string, data interface{}) error {
	if x.readOnly {
		return ErrTxIsReadOnly
	}

	v, err := serializeToValue(data)
	if err != nil {
		return err
	}

	x.replace(newEntry(key, v))
	return nil
}

// Patch merges the top level fields of m into the existing object
// document stored under key.
func (x *Tx) Patch(key string, m M) error {
	if x.readOnly {
		return ErrTxIsReadOnly
	}

	ent, err := x.e.findByKey(key)
	if err != nil {
		return err
	}

	if !gjson.ParseBytes(ent.value).IsObject() {
		return errors.Wrapf(ErrDocumentIsNotAnObject, "key %s", key)
	}

	fields := make(map[string]interface{})
	if err := json.Unmarshal(ent.value, &fields); err != nil {
		return errors.Wrapf(ErrJsonCouldNotBeUnmarshalled, "key %s: %v", key, err)
	}

	for k, v := range m {
		fields[k] = v
	}

	v, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrapf(err, "could not marshal patched document %s", key)
	}

	x.replace(newEntry(key, v))
	return nil
}

func (x *Tx) Remove(keys ...string) error {
	if x.readOnly {
		return ErrTxIsReadOnly
	}

	for _, k := range keys {
		removed, err := x.e.remove(k)
		if err != nil {
			return err
		}

		x.undo = append(x.undo, func() {
			x.e.pks.Set(removed)
		})
	}

	return nil
}

// NextID reserves the next numeric id of collection.
func (x *Tx) NextID(collection string) (int, error) {
	if x.readOnly {
		return 0, ErrTxIsReadOnly
	}

	return x.e.nextID(collection), nil
}

// Find appends every document matching q to dest, in key order. A limit
// caps the documents appended by this call.
func (x *Tx) Find(ctx context.Context, q *queryOptions, dest *[]Document) error {
	if q == nil {
		q = Q()
	}

	matched := 0
	collect := func(ent *entry) bool {
		doc := newDocumentFromEntry(ent)
		if !q.match(doc) {
			return true
		}

		*dest = append(*dest, *doc)
		matched++
		return q.limit == 0 || matched < q.limit
	}

	switch {
	case q.keyRange != nil && q.order == Descend:
		x.e.scanBetweenDescend(ctx, q.keyRange.From, q.keyRange.To, collect)
	case q.keyRange != nil:
		x.e.scanBetweenAscend(ctx, q.keyRange.From, q.keyRange.To, collect)
	case q.prefix != "" && q.order == Descend:
		x.e.scanPrefixDescend(ctx, q.prefix, collect)
	case q.prefix != "":
		x.e.scanPrefixAscend(ctx, q.prefix, collect)
	case q.order == Descend:
		x.e.scanDescend(ctx, collect)
	default:
		x.e.scanAscend(ctx, collect)
	}

	return ctx.Err()
}

func (x *Tx) Count() int {
	return x.e.count()
}

func (x *Tx) replace(ent *entry) {
	prev := x.e.put(ent)
	x.undo = append(x.undo, func() {
		if prev != nil {
			x.e.pks.Set(prev)
		} else {
			x.e.pks.Delete(ent)
		}
	})
}

func (x *Tx) modified() bool {
	return len(x.undo) > 0
}

func (x *Tx) rollback() {
	for i := len(x.undo) - 1; i >= 0; i-- {
		x.undo[i]()
	}
	x.undo = nil
}
