package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_WithDetailsKeepsIdentity(t *testing.T) {
	err := ErrConfirmationRequired.WithDetails(map[string]any{"receivable_count": 2})

	assert.True(t, errors.Is(err, ErrConfirmationRequired))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 2, err.Details["receivable_count"])
	assert.Nil(t, ErrConfirmationRequired.Details)
}

func TestDomainError_IsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("delete client: %w", ErrNotFound)

	assert.True(t, errors.Is(wrapped, ErrNotFound))

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestFilter_WithDoesNotMutateOriginal(t *testing.T) {
	base := DefaultFilter()
	next := base.With("client_id", []string{"a", "b"})

	assert.Empty(t, base.Filters)
	assert.Len(t, next.Filters, 1)
	assert.Equal(t, "created_at", next.OrderBy)
}
