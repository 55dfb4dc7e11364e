package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is a key-value persistence backend for view preferences.
// Get reports found=false for missing keys. A zero ttl means no expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SortConfigKey is the fixed name under which a view's sort configuration is stored.
func SortConfigKey(view, owner string) string {
	return fmt.Sprintf("%s.sort:%s", view, owner)
}

// JSONCodec stores values of T as JSON in a Store.
type JSONCodec[T any] struct {
	store Store
	ttl   time.Duration
}

// NewJSONCodec creates a codec over store. A zero ttl keeps values forever.
func NewJSONCodec[T any](store Store, ttl time.Duration) *JSONCodec[T] {
	return &JSONCodec[T]{store: store, ttl: ttl}
}

// Load decodes the value under key. Missing keys, backend errors and
// undecodable payloads all yield fallback with ok=false; the cause is
// returned as err for logging and never needs to be handled.
func (c *JSONCodec[T]) Load(ctx context.Context, key string, fallback T) (value T, ok bool, err error) {
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		return fallback, false, fmt.Errorf("read %q: %w", key, err)
	}
	if !found {
		return fallback, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return fallback, false, fmt.Errorf("decode %q: %w", key, err)
	}
	return value, true, nil
}

// Save encodes value under key
func (c *JSONCodec[T]) Save(ctx context.Context, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Clear removes key
func (c *JSONCodec[T]) Clear(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear %q: %w", key, err)
	}
	return nil
}

// LoadSortConfig reads the persisted sort configuration for a view and
// normalizes it against the schema, so unknown columns also fall back to
// the schema default.
func LoadSortConfig[T any](ctx context.Context, codec *JSONCodec[SortConfig], key string, schema Schema[T]) (SortConfig, error) {
	cfg, ok, err := codec.Load(ctx, key, schema.Default)
	if !ok {
		return schema.Default, err
	}
	if !schema.Accepts(cfg) {
		return schema.Default, fmt.Errorf("stored sort config %q rejected by view %s", cfg, schema.Name)
	}
	return cfg, nil
}
