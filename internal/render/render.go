// Package render draws table views and their pagination bar as terminal
// text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/denismitr/roster/table"
)

const placeholder = "No data available"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// Headers are the column labels followed by the sort indicator of the
// sorted column.
func Headers[T table.Record](v table.View[T]) []string {
	out := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		out[i] = strings.TrimSpace(col.Label + " " + v.Indicator(col))
	}
	return out
}

// Table draws the visible rows of v, or a placeholder when nothing matches.
func Table[T table.Record](v table.View[T]) string {
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(Headers(v)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range v.Rows {
		t.Row(v.Cells(r)...)
	}

	if v.Empty() {
		return t.String() + "\n" + dimStyle.Render(placeholder)
	}

	return t.String()
}

// Pager draws the previous and next controls around the page window.
// It is empty when everything fits on one page.
func Pager[T table.Record](v table.View[T]) string {
	if !v.Paginated() {
		return ""
	}

	parts := make([]string, 0, len(v.PageNumbers)+2)
	parts = append(parts, control("« Prev", v.HasPrev()))

	for _, n := range v.PageNumbers {
		if n == v.CurrentPage {
			parts = append(parts, currentStyle.Render(fmt.Sprintf("[%d]", n)))
		} else {
			parts = append(parts, fmt.Sprintf(" %d ", n))
		}
	}

	parts = append(parts, control("Next »", v.HasNext()))
	return strings.Join(parts, " ")
}

func control(label string, enabled bool) string {
	if enabled {
		return label
	}
	return dimStyle.Render(label)
}

// View draws an optional title, the table, the entry count and the pager.
func View[T table.Record](title string, v table.View[T]) string {
	var blocks []string
	if title != "" {
		blocks = append(blocks, titleStyle.Render(title))
	}

	blocks = append(blocks, Table(v), dimStyle.Render(fmt.Sprintf("Total entries: %d", v.TotalCount)))

	if p := Pager(v); p != "" {
		blocks = append(blocks, p)
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
