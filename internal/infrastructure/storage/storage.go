// Package storage keeps email attachments in S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrObjectNotFound is returned when the key does not exist
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrObjectTooLarge is returned when an object exceeds the read limit
	ErrObjectTooLarge = errors.New("storage: object too large")
	// ErrKeyRequired is returned for empty keys
	ErrKeyRequired = errors.New("storage key is required")
)

// Object is a downloaded object
type Object struct {
	Key         string
	ContentType string
	Content     []byte
}

// ObjectStorage is implemented by S3ObjectStorage and MemoryObjectStorage
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	// Get reads the object; maxBytes <= 0 disables the limit
	Get(ctx context.Context, key string, maxBytes int64) (*Object, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// AttachmentKey builds "<prefix>/<tenant>/<uuid>-<filename>"
func AttachmentKey(prefix string, tenantID uuid.UUID, filename string) string {
	name := unsafeChars.ReplaceAllString(path.Base(strings.TrimSpace(filename)), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "attachment"
	}
	if len(name) > 100 {
		name = name[len(name)-100:]
	}
	return path.Join(strings.Trim(prefix, "/"), tenantID.String(), uuid.NewString()+"-"+name)
}

// TenantOwnsKey reports whether key lies under the tenant's attachment prefix
func TenantOwnsKey(prefix string, tenantID uuid.UUID, key string) bool {
	return strings.HasPrefix(key, path.Join(strings.Trim(prefix, "/"), tenantID.String())+"/")
}
