package storage

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"
)

var _ ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps objects in process memory. It backs local
// development when no S3 endpoint is configured, and tests.
// Presigned URLs point at BaseURL and are not served by anything.
type MemoryObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemoryObjectStorage creates an empty store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "http://localhost:9000/local",
		objects: make(map[string]Object),
	}
}

func (m *MemoryObjectStorage) presign(op, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrKeyRequired
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := time.Now().Add(expiresIn)
	q := url.Values{"op": {op}, "expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return fmt.Sprintf("%s/%s?%s", m.BaseURL, key, q.Encode()), expiresAt, nil
}

func (m *MemoryObjectStorage) GenerateUploadURL(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return m.presign("put", key, expiresIn)
}

func (m *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	return m.presign("get", key, expiresIn)
}

func (m *MemoryObjectStorage) Get(_ context.Context, key string, maxBytes int64) (*Object, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrObjectNotFound
	}
	if maxBytes > 0 && int64(len(obj.Content)) > maxBytes {
		return nil, ErrObjectTooLarge
	}
	obj.Content = append([]byte(nil), obj.Content...)
	return &obj, nil
}

func (m *MemoryObjectStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrKeyRequired
	}
	m.mu.Lock()
	m.objects[key] = Object{Key: key, ContentType: contentType, Content: append([]byte(nil), data...)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryObjectStorage) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrKeyRequired
	}
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	return ok, nil
}
