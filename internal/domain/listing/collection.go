package listing

// Collection is an ordered mapping from id to record, as returned by the
// data fetcher. Iteration follows insertion order.
type Collection[T any] struct {
	order []string
	items map[string]T
}

// NewCollection indexes items by id, keeping their order. A later item with
// a duplicate id replaces the earlier one in place.
func NewCollection[T any](items []T, id func(T) string) *Collection[T] {
	c := &Collection[T]{
		order: make([]string, 0, len(items)),
		items: make(map[string]T, len(items)),
	}
	for _, item := range items {
		key := id(item)
		if _, exists := c.items[key]; !exists {
			c.order = append(c.order, key)
		}
		c.items[key] = item
	}
	return c
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get returns the record with the given id
func (c *Collection[T]) Get(id string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	item, ok := c.items[id]
	return item, ok
}

// Has reports whether the id is present
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// IDs returns the ids in collection order
func (c *Collection[T]) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Values returns the records in collection order
func (c *Collection[T]) Values() []T {
	if c == nil {
		return nil
	}
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}
