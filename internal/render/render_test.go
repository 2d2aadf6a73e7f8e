package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/denismitr/roster/table"
	"github.com/stretchr/testify/assert"
)

func people(n int) []table.M {
	out := make([]table.M, n)
	for i := range out {
		out[i] = table.M{"id": i + 1, "name": fmt.Sprintf("person-%02d", i+1)}
	}
	return out
}

func TestHeaders(t *testing.T) {
	c := table.New(table.Columns("id", "ID", "name", "Name"), people(3), nil)
	assert.Equal(t, []string{"ID", "Name"}, Headers(c.Derive()))

	c.ToggleSort("name")
	assert.Equal(t, []string{"ID", "Name ↑"}, Headers(c.Derive()))

	c.ToggleSort("name")
	assert.Equal(t, []string{"ID", "Name ↓"}, Headers(c.Derive()))
}

func TestTable(t *testing.T) {
	t.Run("it renders visible rows", func(t *testing.T) {
		c := table.New(table.Columns("name", "Name"), people(3), nil)
		out := Table(c.Derive())

		assert.Contains(t, out, "Name")
		assert.Contains(t, out, "person-01")
		assert.Contains(t, out, "person-03")
		assert.NotContains(t, out, placeholder)
	})

	t.Run("it shows a placeholder when nothing matches", func(t *testing.T) {
		c := table.New(table.Columns("name", "Name"), people(3), nil)
		c.SetSearchTerm("nobody")

		assert.Contains(t, Table(c.Derive()), placeholder)
	})
}

func TestPager(t *testing.T) {
	t.Run("it is hidden for a single page", func(t *testing.T) {
		c := table.New(table.Columns("name", "Name"), people(10), nil)
		assert.Empty(t, Pager(c.Derive()))
	})

	t.Run("it shows the page window", func(t *testing.T) {
		c := table.New(table.Columns("name", "Name"), people(70), &table.Config{PageSize: 5})
		c.SetPage(7)

		out := Pager(c.Derive())
		for _, n := range []string{"5", "6", "[7]", "8", "9"} {
			assert.Contains(t, out, n)
		}
		assert.NotContains(t, out, " 4 ")
		assert.NotContains(t, out, "10")
		assert.True(t, strings.HasPrefix(out, "« Prev"))
		assert.True(t, strings.HasSuffix(out, "Next »"))
	})
}

func TestView(t *testing.T) {
	c := table.New(table.Columns("name", "Name"), people(23), nil)
	c.SetPage(3)

	out := View("People", c.Derive())
	assert.Contains(t, out, "People")
	assert.Contains(t, out, "Total entries: 23")
	assert.Contains(t, out, "person-21")
	assert.Contains(t, out, "[3]")
}
