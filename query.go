package roster

import (
	"github.com/denismitr/roster/table"
	"github.com/tidwall/gjson"
)

// M is a set of top level document fields.
type M map[string]interface{}

type KeyRange struct {
	From, To string
}

type Order string

const (
	Ascend  Order = "ASC"
	Descend Order = "DESC"
)

// Filter decides whether a scanned document belongs to the result.
type Filter func(d *Document) bool

type queryOptions struct {
	order    Order
	keyRange *KeyRange
	prefix   string
	filters  []Filter
	limit    int
}

func Q() *queryOptions {
	return &queryOptions{order: Ascend}
}

func (q *queryOptions) Order(o Order) *queryOptions {
	q.order = o
	return q
}

// KeyRange limits the scan to keys in [from, to).
func (q *queryOptions) KeyRange(from, to string) *queryOptions {
	q.keyRange = &KeyRange{From: from, To: to}
	return q
}

// Prefix limits the scan to keys whose leading segments equal p,
// so Prefix("shift") matches shift:1 but not shifts:1.
func (q *queryOptions) Prefix(p string) *queryOptions {
	q.prefix = p
	return q
}

func (q *queryOptions) Where(filters ...Filter) *queryOptions {
	q.filters = append(q.filters, filters...)
	return q
}

func (q *queryOptions) Limit(n int) *queryOptions {
	q.limit = n
	return q
}

func (q *queryOptions) match(d *Document) bool {
	for _, f := range q.filters {
		if !f(d) {
			return false
		}
	}
	return true
}

// Eq matches documents whose value at path has the same text as v.
func Eq(path string, v interface{}) Filter {
	want := table.Text(v)
	return func(d *Document) bool {
		r := gjson.GetBytes(d.value, path)
		return r.Exists() && r.String() == want
	}
}

// Between matches documents whose text at path lies in [from, to].
// It suits ISO dates and zero padded times.
func Between(path, from, to string) Filter {
	return func(d *Document) bool {
		r := gjson.GetBytes(d.value, path)
		if !r.Exists() {
			return false
		}

		s := r.String()
		return s >= from && s <= to
	}
}

func AnyOf(filters ...Filter) Filter {
	return func(d *Document) bool {
		for _, f := range filters {
			if f(d) {
				return true
			}
		}
		return false
	}
}
