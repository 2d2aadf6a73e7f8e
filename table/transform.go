package table

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Ascend  Direction = "ASC"
	Descend Direction = "DESC"
)

func (d Direction) Flip() Direction {
	if d == Descend {
		return Ascend
	}
	return Descend
}

func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

// Filter keeps the records having at least one field whose text contains
// term, ignoring case. An empty term keeps everything in input order.
func Filter[T Record](records []T, term string) []T {
	out := make([]T, 0, len(records))
	if term == "" {
		return append(out, records...)
	}

	needle := strings.ToLower(term)
	for _, r := range records {
		if matches(r, needle) {
			out = append(out, r)
		}
	}

	return out
}

func matches(r Record, needle string) bool {
	for _, f := range r.Fields() {
		if strings.Contains(strings.ToLower(Text(r.Value(f))), needle) {
			return true
		}
	}
	return false
}

type keyedRecord[T Record] struct {
	rec  T
	text string
}

// Sort orders records by the text of their value at key using a stable,
// locale aware comparison. An empty key preserves insertion order.
// A nil collator means a fresh one for the undetermined locale.
func Sort[T Record](records []T, key string, dir Direction, c *collate.Collator) []T {
	out := make([]T, len(records))
	if key == "" {
		copy(out, records)
		return out
	}

	if c == nil {
		c = newCollator()
	}

	keyed := make([]keyedRecord[T], len(records))
	for i, r := range records {
		keyed[i] = keyedRecord[T]{rec: r, text: Text(r.Value(key))}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if dir == Descend {
			return c.CompareString(keyed[j].text, keyed[i].text) < 0
		}
		return c.CompareString(keyed[i].text, keyed[j].text) < 0
	})

	for i := range keyed {
		out[i] = keyed[i].rec
	}

	return out
}

// TotalPages is zero for an empty set.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	if count <= 0 {
		return 0
	}

	return (count + pageSize - 1) / pageSize
}

// Paginate returns the slice of records shown on the 1-based page.
func Paginate[T Record](records []T, page, pageSize int) []T {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(records) {
		return []T{}
	}

	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}

	return records[start:end:end]
}
