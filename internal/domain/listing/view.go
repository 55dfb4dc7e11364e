package listing

import "slices"

// State is the load state of a View.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Default action menu size in pixels.
const (
	DefaultMenuWidth  = 180
	DefaultMenuHeight = 96
)

// View is a list of T with a search term, a sort configuration, a bulk
// selection and row action menus. Rows are derived synchronously on every call.
type View[T any] struct {
	schema    Schema[T]
	id        func(T) string
	state     State
	raw       *Collection[T]
	search    string
	sort      SortConfig
	selection *Selection
	menu      *MenuAnchors
}

// NewView creates a loading view sorted by the schema default.
func NewView[T any](schema Schema[T], id func(T) string) *View[T] {
	return &View[T]{
		schema:    schema,
		id:        id,
		state:     StateLoading,
		sort:      schema.Default,
		selection: NewSelection(),
		menu:      NewMenuAnchors(DefaultMenuWidth, DefaultMenuHeight),
	}
}

// Load replaces the raw collection and marks the view ready.
func (v *View[T]) Load(c *Collection[T]) {
	v.raw = c
	v.state = StateReady
}

// State returns the load state
func (v *View[T]) State() State {
	return v.state
}

// Collection returns the raw collection
func (v *View[T]) Collection() *Collection[T] {
	return v.raw
}

// SetSearch sets the free-text search term
func (v *View[T]) SetSearch(term string) {
	v.search = term
}

// Search returns the search term
func (v *View[T]) Search() string {
	return v.search
}

// SetSort sets the sort configuration, falling back to the schema default
// for unknown columns. The effective configuration is returned.
func (v *View[T]) SetSort(cfg SortConfig) SortConfig {
	v.sort = v.schema.Normalize(cfg)
	return v.sort
}

// Sort returns the active sort configuration
func (v *View[T]) Sort() SortConfig {
	return v.sort
}

// ClickHeader toggles the sort for column.
func (v *View[T]) ClickHeader(column string) (SortConfig, error) {
	if _, ok := v.schema.Column(column); !ok {
		return v.sort, ErrUnknownColumn.WithDetails(map[string]any{
			"column":  column,
			"allowed": v.schema.ColumnKeys(),
		})
	}
	v.sort = v.sort.Toggle(column)
	return v.sort, nil
}

// Filtered returns the raw records matching the search term, in collection order.
func (v *View[T]) Filtered() []T {
	return Filter(v.raw.Values(), v.search, v.schema.Searchable)
}

// Rows returns the filtered records sorted by the active configuration.
// The sort is stable, so ties and the Unsorted direction keep collection order.
func (v *View[T]) Rows() []T {
	rows := v.Filtered()
	col, ok := v.schema.Column(v.sort.Key)
	if !ok || v.sort.Sort == Unsorted {
		return rows
	}
	dir := v.sort.Sort
	slices.SortStableFunc(rows, func(a, b T) int {
		return col.Compare(a, b, dir)
	})
	return rows
}

// VisibleIDs returns the ids of the filtered rows.
func (v *View[T]) VisibleIDs() []string {
	rows := v.Filtered()
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, v.id(r))
	}
	return ids
}

// Selection returns the bulk selection
func (v *View[T]) Selection() *Selection {
	return v.selection
}

// ToggleSelectAll selects every visible row, or clears the selection when
// they are all selected already.
func (v *View[T]) ToggleSelectAll() {
	v.selection.ToggleAll(v.VisibleIDs())
}

// Menu returns the row action menu anchors
func (v *View[T]) Menu() *MenuAnchors {
	return v.menu
}

// Dismiss handles Escape and outside clicks: any open menu is closed and the
// selection is cleared.
func (v *View[T]) Dismiss() {
	v.menu.Close()
	v.selection.Clear()
}
