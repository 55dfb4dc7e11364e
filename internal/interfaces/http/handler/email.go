package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	notificationapp "github.com/paymentflow/backend/internal/application/notification"
	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/infrastructure/storage"
)

// EmailRelay sends email batches
type EmailRelay interface {
	Send(ctx context.Context, tenantID uuid.UUID, req notificationapp.SendEmailsRequest) (*notification.Result, error)
}

// EmailHandler exposes the email relay
type EmailHandler struct {
	BaseHandler
	relay     EmailRelay
	keyPrefix string
}

// NewEmailHandler creates a new EmailHandler. Storage references in
// attachment_url must live under keyPrefix/<tenant>/.
func NewEmailHandler(relay EmailRelay, keyPrefix string) *EmailHandler {
	return &EmailHandler{relay: relay, keyPrefix: keyPrefix}
}

// Send relays a batch of emails. The body is the relay result itself:
// {success, sent, failures}; success is false when any message failed.
//
//	@Router	/emails/send [post]
func (h *EmailHandler) Send(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req notificationapp.SendEmailsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	for i, e := range req.Emails {
		if !h.ownsAttachment(tenantID, e.AttachmentURL) {
			h.Error(c, http.StatusBadRequest, "ERR_INVALID_ATTACHMENT",
				fmt.Sprintf("emails[%d].attachment_url does not belong to this account", i))
			return
		}
	}

	result, err := h.relay.Send(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ownsAttachment accepts empty and http(s) references; storage references
// must point into the tenant's own key space
func (h *EmailHandler) ownsAttachment(tenantID uuid.UUID, ref string) bool {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	switch {
	case ref == "":
		return true
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return true
	case strings.HasPrefix(lower, "s3://"):
		rest := ref[len("s3://"):]
		slash := strings.IndexByte(rest, '/')
		if slash < 0 {
			return false
		}
		ref = rest[slash+1:]
	}
	return storage.TenantOwnsKey(h.keyPrefix, tenantID, ref)
}

