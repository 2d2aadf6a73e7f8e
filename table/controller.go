package table

import "golang.org/x/text/collate"

const DefaultPageSize = 10

type Config struct {
	PageSize int
}

func (cfg *Config) applyTo(c controllerSettings) {
	if cfg == nil || cfg.PageSize < 1 {
		c.setPageSize(DefaultPageSize)
		return
	}

	c.setPageSize(cfg.PageSize)
}

type controllerSettings interface {
	setPageSize(n int)
}

// State is the mutable search, sort and page state owned by a Controller.
type State struct {
	SortKey     string
	Direction   Direction
	CurrentPage int
	SearchTerm  string
}

func defaultState() State {
	return State{Direction: Ascend, CurrentPage: 1}
}

// View is everything a renderer needs for the current state.
type View[T Record] struct {
	Columns     []Column
	Rows        []T
	TotalCount  int
	TotalPages  int
	PageNumbers []int
	SortKey     string
	Direction   Direction
	SearchTerm  string
	CurrentPage int
}

// Paginated reports whether page controls should be shown at all.
func (v View[T]) Paginated() bool {
	return v.TotalPages > 1
}

func (v View[T]) Empty() bool {
	return len(v.Rows) == 0
}

func (v View[T]) HasPrev() bool {
	return v.CurrentPage > 1
}

func (v View[T]) HasNext() bool {
	return v.CurrentPage < v.TotalPages
}

// Indicator is the sort arrow for a column header, empty for unsorted columns.
func (v View[T]) Indicator(col Column) string {
	if v.SortKey == "" || v.SortKey != col.Key {
		return ""
	}

	if v.Direction == Descend {
		return "↓"
	}

	return "↑"
}

// Cells renders a row in column order.
func (v View[T]) Cells(row T) []string {
	cells := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		cells[i] = Text(row.Value(col.Key))
	}
	return cells
}

// Controller composes filtering, sorting and pagination over an in-memory
// record set. It is owned by a single caller and is not safe for
// concurrent use.
type Controller[T Record] struct {
	columns        []Column
	records        []T
	pageSize       int
	onRowActivated func(row T)
	collator       *collate.Collator
	state          State
}

func New[T Record](columns []Column, records []T, cfg *Config) *Controller[T] {
	c := &Controller[T]{
		columns:  columns,
		records:  records,
		collator: newCollator(),
		state:    defaultState(),
	}

	cfg.applyTo(c)

	return c
}

func (c *Controller[T]) setPageSize(n int) {
	c.pageSize = n
}

// OnRowActivated sets the row activation callback, nil disables activation.
func (c *Controller[T]) OnRowActivated(fn func(row T)) {
	c.onRowActivated = fn
}

func (c *Controller[T]) State() State {
	return c.state
}

func (c *Controller[T]) PageSize() int {
	return c.pageSize
}

// SetRecords replaces the record set and renormalizes the current page.
func (c *Controller[T]) SetRecords(records []T) {
	c.records = records
	c.state.CurrentPage = ClampPage(c.state.CurrentPage, c.totalPages())
}

func (c *Controller[T]) SetSearchTerm(text string) {
	c.state.SearchTerm = text
	c.state.CurrentPage = 1
}

// ToggleSort flips the direction when key is already the sort key, otherwise
// it sorts ascending by key. Keys not present among the columns are ignored.
func (c *Controller[T]) ToggleSort(key string) bool {
	if !c.sortable(key) {
		return false
	}

	if c.state.SortKey == key {
		c.state.Direction = c.state.Direction.Flip()
		return true
	}

	c.state.SortKey = key
	c.state.Direction = Ascend
	return true
}

func (c *Controller[T]) SetPage(n int) {
	c.state.CurrentPage = ClampPage(n, c.totalPages())
}

func (c *Controller[T]) NextPage() {
	c.SetPage(c.state.CurrentPage + 1)
}

func (c *Controller[T]) PrevPage() {
	c.SetPage(c.state.CurrentPage - 1)
}

// Derive computes the visible page from the records and the current state.
func (c *Controller[T]) Derive() View[T] {
	filtered := Filter(c.records, c.state.SearchTerm)
	sorted := Sort(filtered, c.state.SortKey, c.state.Direction, c.collator)
	total := TotalPages(len(sorted), c.pageSize)
	page := ClampPage(c.state.CurrentPage, total)

	return View[T]{
		Columns:     c.columns,
		Rows:        Paginate(sorted, page, c.pageSize),
		TotalCount:  len(sorted),
		TotalPages:  total,
		PageNumbers: PageNumbers(page, total),
		SortKey:     c.state.SortKey,
		Direction:   c.state.Direction,
		SearchTerm:  c.state.SearchTerm,
		CurrentPage: page,
	}
}

// Activate hands the visible row with the given key to the activation
// callback. It reports false when activation is disabled or the row is
// not on the current page.
func (c *Controller[T]) Activate(key string) bool {
	if c.onRowActivated == nil {
		return false
	}

	for _, row := range c.Derive().Rows {
		if row.Key() == key {
			c.onRowActivated(row)
			return true
		}
	}

	return false
}

func (c *Controller[T]) sortable(key string) bool {
	for _, col := range c.columns {
		if col.Key == key {
			return true
		}
	}
	return false
}

func (c *Controller[T]) totalPages() int {
	return TotalPages(len(Filter(c.records, c.state.SearchTerm)), c.pageSize)
}
