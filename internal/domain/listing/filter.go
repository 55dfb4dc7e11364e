package listing

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter keeps the items for which any of the fields contains term,
// ignoring case. A blank term returns all items in their existing order.
// The input slice is never modified.
func Filter[T any](items []T, term string, fields []func(T) string) []T {
	out := make([]T, 0, len(items))
	term = strings.TrimSpace(term)
	if term == "" {
		return append(out, items...)
	}

	fold := cases.Fold()
	needle := fold.String(term)
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(fold.String(field(item)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
