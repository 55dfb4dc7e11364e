package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymentflow/backend/internal/domain/listing"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"column":"city","direction":"desc"}`)
	require.NoError(t, s.Set(ctx, "clients.sort:t:u", value, 0))
	value[0] = 'X' // stored copy must not change

	got, ok, err := s.Get(ctx, "clients.sort:t:u")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte('{'), got[0])

	require.NoError(t, s.Delete(ctx, "clients.sort:t:u"))
	require.NoError(t, s.Delete(ctx, "clients.sort:t:u"))
	_, ok, _ = s.Get(ctx, "clients.sort:t:u")
	assert.False(t, ok)
}

func TestMemoryStore_TTL(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, s.Set(ctx, "forever", []byte("2"), 0))
	assert.Equal(t, 2, s.Len())

	now = now.Add(2 * time.Minute)
	_, ok, _ := s.Get(ctx, "short")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "forever")
	assert.True(t, ok)

	s.sweep()
	s.mu.RLock()
	_, present := s.entries["short"]
	s.mu.RUnlock()
	assert.False(t, present)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore(time.Millisecond)
	defer s.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := listing.SortConfigKey("clients", string(rune('a'+i)))
			_ = s.Set(ctx, key, []byte("v"), time.Second)
			_, _, _ = s.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, s.Len())
}

func TestMemoryStore_WithSortConfigCodec(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()
	codec := listing.NewJSONCodec[listing.SortConfig](s, 0)

	cfg := listing.SortConfig{Key: "city", Sort: listing.Descending}
	require.NoError(t, codec.Save(ctx, "k", cfg))

	got, ok, err := codec.Load(ctx, "k", listing.SortConfig{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cfg, got)
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Millisecond)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
