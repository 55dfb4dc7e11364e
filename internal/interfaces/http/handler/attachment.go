package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paymentflow/backend/internal/infrastructure/storage"
)

// UploadURLRequest asks for a presigned upload slot
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"omitempty,max=100"`
}

// PresignedURLResponse is a presigned URL and the key to reference later
type PresignedURLResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadURLQuery selects the object to download
type DownloadURLQuery struct {
	Key string `form:"key" binding:"required,max=1024"`
}

// AttachmentHandler hands out presigned URLs for email attachments
type AttachmentHandler struct {
	BaseHandler
	objects   storage.ObjectStorage
	keyPrefix string
	expiry    time.Duration
}

// NewAttachmentHandler creates a new AttachmentHandler. objects may be nil
// when storage is disabled; every call then answers 503.
func NewAttachmentHandler(objects storage.ObjectStorage, keyPrefix string, expiry time.Duration) *AttachmentHandler {
	return &AttachmentHandler{objects: objects, keyPrefix: keyPrefix, expiry: expiry}
}

// UploadURL returns a presigned PUT URL under the tenant's key space. The
// returned key goes into attachment_url of a relay request.
//
//	@Router	/attachments/upload-url [post]
func (h *AttachmentHandler) UploadURL(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if h.objects == nil {
		h.ServiceUnavailable(c, "Attachment storage is not configured")
		return
	}
	var req UploadURLRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.ContentType == "" {
		req.ContentType = "application/octet-stream"
	}

	key := storage.AttachmentKey(h.keyPrefix, tenantID, req.Filename)
	url, expiresAt, err := h.objects.GenerateUploadURL(c.Request.Context(), key, req.ContentType, h.expiry)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, PresignedURLResponse{Key: key, URL: url, Method: http.MethodPut, ExpiresAt: expiresAt})
}

// DownloadURL returns a presigned GET URL for one of the tenant's attachments
//
//	@Router	/attachments/download-url [get]
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if h.objects == nil {
		h.ServiceUnavailable(c, "Attachment storage is not configured")
		return
	}
	var q DownloadURLQuery
	if !h.bindQuery(c, &q) {
		return
	}
	if !storage.TenantOwnsKey(h.keyPrefix, tenantID, q.Key) {
		h.NotFound(c, "Attachment not found")
		return
	}

	ctx := c.Request.Context()
	exists, err := h.objects.Exists(ctx, q.Key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !exists {
		h.NotFound(c, "Attachment not found")
		return
	}
	url, expiresAt, err := h.objects.GenerateDownloadURL(ctx, q.Key, h.expiry)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, PresignedURLResponse{Key: q.Key, URL: url, Method: http.MethodGet, ExpiresAt: expiresAt})
}
