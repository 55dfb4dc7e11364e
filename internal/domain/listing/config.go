package listing

import (
	"fmt"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// SortConfig is the active (column, direction) pair of a list view.
type SortConfig struct {
	Key  string    `json:"key"`
	Sort Direction `json:"sort"`
}

// String returns a readable form, e.g. "company_name asc"
func (c SortConfig) String() string {
	return fmt.Sprintf("%s %s", c.Key, c.Sort)
}

// Toggle applies a column header click. Clicking the active column flips
// between ascending and descending (an unsorted column starts ascending);
// clicking another column selects it ascending.
func (c SortConfig) Toggle(column string) SortConfig {
	if c.Key != column {
		return SortConfig{Key: column, Sort: Ascending}
	}
	switch c.Sort {
	case Ascending:
		return SortConfig{Key: column, Sort: Descending}
	default:
		return SortConfig{Key: column, Sort: Ascending}
	}
}

// ErrUnknownColumn is returned when a sort request names a column the view does not have.
var ErrUnknownColumn = shared.NewDomainError("UNKNOWN_SORT_COLUMN", "Unknown sort column")
