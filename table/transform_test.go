package table

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(rs []M) []string {
	keys := make([]string, len(rs))
	for i := range rs {
		keys[i] = rs[i].Key()
	}
	return keys
}

func shuffledNames(r *rand.Rand, n int) []M {
	rs := make([]M, n)
	for i, p := range r.Perm(n) {
		rs[i] = M{"id": i + 1, "name": fmt.Sprintf("name-%03d", p)}
	}
	return rs
}

func TestText(t *testing.T) {
	tt := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"Bob", "Bob"},
		{12, "12"},
		{int64(-7), "-7"},
		{uint8(3), "3"},
		{12.5, "12.5"},
		{float64(3), "3"},
		{true, "true"},
		{[]byte("raw"), "raw"},
		{Ascend, "ASC"},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("%T_%v", tc.in, tc.in), func(t *testing.T) {
			assert.Equal(t, tc.want, Text(tc.in))
		})
	}
}

func TestFilter(t *testing.T) {
	records := []M{
		{"id": 1, "name": "Bob", "location": "Warehouse"},
		{"id": 2, "name": "Ann", "location": "Front desk"},
		{"id": 3, "name": "cara", "location": nil},
	}

	t.Run("empty term keeps everything in order", func(t *testing.T) {
		got := Filter(records, "")
		assert.Equal(t, []string{"1", "2", "3"}, keysOf(got))
	})

	t.Run("matching ignores case", func(t *testing.T) {
		assert.Equal(t, []string{"1"}, keysOf(Filter(records, "WARE")))
		assert.Equal(t, []string{"2"}, keysOf(Filter(records, "an")))
	})

	t.Run("fields outside of columns are searched too", func(t *testing.T) {
		assert.Equal(t, []string{"2"}, keysOf(Filter(records, "desk")))
	})

	t.Run("absent values never match", func(t *testing.T) {
		assert.Empty(t, Filter(records, "null"))
		assert.Empty(t, Filter(records, "<nil>"))
	})

	t.Run("numbers match by their text", func(t *testing.T) {
		assert.Equal(t, []string{"3"}, keysOf(Filter(records, "3")))
	})

	t.Run("input is not modified", func(t *testing.T) {
		got := Filter(records, "bob")
		require.Len(t, got, 1)
		got[0] = M{"id": 99}
		assert.Equal(t, "1", records[0].Key())
	})
}

func TestFilter_Property(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	records := shuffledNames(r, 60)

	for _, term := range []string{"0", "NAME-01", "5", "zzz", "-"} {
		needle := strings.ToLower(term)
		want := []string{}
		for _, rec := range records {
			name := strings.ToLower(rec["name"].(string))
			if strings.Contains(name, needle) || strings.Contains(rec.Key(), needle) {
				want = append(want, rec.Key())
			}
		}

		if diff := cmp.Diff(want, keysOf(Filter(records, term))); diff != "" {
			t.Errorf("term %q mismatch (-want +got):\n%s", term, diff)
		}
	}
}

func TestSort(t *testing.T) {
	records := []M{
		{"id": 1, "name": "Bob"},
		{"id": 2, "name": "Ann"},
		{"id": 3, "name": "cara"},
	}

	t.Run("no sort key keeps insertion order", func(t *testing.T) {
		assert.Equal(t, []string{"1", "2", "3"}, keysOf(Sort(records, "", Ascend, nil)))
		assert.Equal(t, []string{"1", "2", "3"}, keysOf(Sort(records, "", Descend, nil)))
	})

	t.Run("ascending is locale aware and ignores case at the first level", func(t *testing.T) {
		assert.Equal(t, []string{"2", "1", "3"}, keysOf(Sort(records, "name", Ascend, nil)))
	})

	t.Run("descending", func(t *testing.T) {
		assert.Equal(t, []string{"3", "1", "2"}, keysOf(Sort(records, "name", Descend, nil)))
	})

	t.Run("absent values sort as empty text", func(t *testing.T) {
		withMissing := append([]M{{"id": 4}}, records...)
		assert.Equal(t, []string{"4", "2", "1", "3"}, keysOf(Sort(withMissing, "name", Ascend, nil)))
	})

	t.Run("input is not reordered", func(t *testing.T) {
		_ = Sort(records, "name", Ascend, nil)
		assert.Equal(t, []string{"1", "2", "3"}, keysOf(records))
	})
}

func TestSort_Stability(t *testing.T) {
	records := []M{
		{"id": "a", "shift": "morning"},
		{"id": "b", "shift": "evening"},
		{"id": "c", "shift": "morning"},
		{"id": "d", "shift": "evening"},
		{"id": "e", "shift": "morning"},
	}

	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, keysOf(Sort(records, "shift", Ascend, nil)))
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, keysOf(Sort(records, "shift", Descend, nil)))
}

func TestSort_DirectionSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for n := 0; n < 40; n += 7 {
		records := shuffledNames(r, n)
		asc := keysOf(Sort(records, "name", Ascend, nil))
		desc := keysOf(Sort(records, "name", Descend, nil))

		reversed := make([]string, len(asc))
		for i := range asc {
			reversed[len(asc)-1-i] = asc[i]
		}

		if diff := cmp.Diff(desc, reversed); diff != "" {
			t.Errorf("n=%d reversed ascending differs from descending (-desc +reversed):\n%s", n, diff)
		}
	}
}

func TestPaginate_Exhaustive(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	records := shuffledNames(r, 23)

	for pageSize := 1; pageSize <= 25; pageSize++ {
		total := TotalPages(len(records), pageSize)
		var joined []M
		for page := 1; page <= total; page++ {
			rows := Paginate(records, page, pageSize)
			require.NotEmpty(t, rows)
			require.LessOrEqual(t, len(rows), pageSize)
			joined = append(joined, rows...)
		}

		assert.Equal(t, keysOf(records), keysOf(joined), "page size %d", pageSize)
	}
}

func TestPaginate_Bounds(t *testing.T) {
	records := []M{{"id": 1}, {"id": 2}, {"id": 3}}

	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(3, 10))
	assert.Equal(t, 2, TotalPages(3, 2))
	assert.Equal(t, 1, TotalPages(3, 0), "non-positive page size falls back to the default")

	assert.Empty(t, Paginate(records, 3, 2))
	assert.Equal(t, []string{"1", "2"}, keysOf(Paginate(records, 0, 2)))
	assert.Empty(t, Paginate([]M{}, 1, 10))
}

func TestPageNumbers(t *testing.T) {
	tt := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"first of twelve", 1, 12, []int{1, 2, 3, 4, 5}},
		{"last of twelve", 12, 12, []int{8, 9, 10, 11, 12}},
		{"middle of twelve", 6, 12, []int{4, 5, 6, 7, 8}},
		{"second of twelve", 2, 12, []int{1, 2, 3, 4, 5}},
		{"eleventh of twelve", 11, 12, []int{8, 9, 10, 11, 12}},
		{"fewer pages than the window", 2, 3, []int{1, 2, 3}},
		{"exactly the window", 5, 5, []int{1, 2, 3, 4, 5}},
		{"single page", 1, 1, []int{1}},
		{"no pages", 1, 0, []int{}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageNumbers(tc.current, tc.total))
		})
	}
}

func TestClampPage(t *testing.T) {
	for total := 0; total <= 6; total++ {
		for n := -3; n <= 10; n++ {
			got := ClampPage(n, total)
			if total == 0 {
				assert.Equal(t, 1, got)
				continue
			}
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, total)
		}
	}
}
