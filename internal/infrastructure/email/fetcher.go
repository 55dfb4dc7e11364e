package email

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/infrastructure/storage"
)

var _ notification.AttachmentFetcher = (*AttachmentFetcher)(nil)

// ErrAttachmentTooLarge is returned when an attachment exceeds the cap
var ErrAttachmentTooLarge = errors.New("attachment exceeds size limit")

// AttachmentFetcher resolves attachment references. http(s) URLs are
// downloaded; "s3://bucket/key" and bare keys are read from object storage.
type AttachmentFetcher struct {
	client   *http.Client
	objects  storage.ObjectStorage
	maxBytes int64
}

// NewAttachmentFetcher creates a fetcher. objects may be nil when storage is
// disabled, in which case only URLs are accepted.
func NewAttachmentFetcher(objects storage.ObjectStorage, maxBytes int64, timeout time.Duration) *AttachmentFetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &AttachmentFetcher{
		client:   &http.Client{Timeout: timeout},
		objects:  objects,
		maxBytes: maxBytes,
	}
}

// Fetch implements notification.AttachmentFetcher
func (f *AttachmentFetcher) Fetch(ctx context.Context, ref string) (*notification.Attachment, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty attachment reference")
	}
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid attachment reference: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return f.fetchURL(ctx, u)
	case "s3":
		return f.fetchObject(ctx, strings.TrimPrefix(u.Path, "/"))
	case "":
		return f.fetchObject(ctx, strings.TrimPrefix(ref, "/"))
	default:
		return nil, fmt.Errorf("unsupported attachment scheme %q", u.Scheme)
	}
}

func (f *AttachmentFetcher) fetchURL(ctx context.Context, u *url.URL) (*notification.Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download attachment: unexpected status %d", resp.StatusCode)
	}
	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return nil, ErrAttachmentTooLarge
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, ErrAttachmentTooLarge
	}

	name := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = path.Base(u.Path)
	}
	return &notification.Attachment{
		Filename:    cleanFilename(name),
		ContentType: contentType(resp.Header.Get("Content-Type"), data),
		Content:     data,
	}, nil
}

func (f *AttachmentFetcher) fetchObject(ctx context.Context, key string) (*notification.Attachment, error) {
	if f.objects == nil {
		return nil, errors.New("object storage is not configured")
	}
	obj, err := f.objects.Get(ctx, key, f.maxBytes)
	if err != nil {
		if errors.Is(err, storage.ErrObjectTooLarge) {
			return nil, ErrAttachmentTooLarge
		}
		return nil, fmt.Errorf("load attachment %q: %w", key, err)
	}
	return &notification.Attachment{
		Filename:    cleanFilename(path.Base(key)),
		ContentType: contentType(obj.ContentType, obj.Content),
		Content:     obj.Content,
	}, nil
}

func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// cleanFilename drops the uuid prefix storage.AttachmentKey adds
func cleanFilename(name string) string {
	if len(name) > 37 && name[36] == '-' {
		if _, err := uuid.Parse(name[:36]); err == nil {
			name = name[37:]
		}
	}
	if name == "" || name == "." || name == "/" {
		return "attachment"
	}
	return name
}

func contentType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}
