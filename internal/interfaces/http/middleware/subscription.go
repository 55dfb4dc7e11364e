package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/infrastructure/logger"
	"github.com/paymentflow/backend/internal/interfaces/http/dto"
)

// RequireActiveSubscription denies mutating requests of tenants without an
// active subscription with 402 and details.show_modal. Safe methods pass.
func RequireActiveSubscription(gate identity.SubscriptionGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		tenantID := GetTenantID(c)
		if tenantID == uuid.Nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required", nil)
			return
		}

		decision, err := gate.Check(c.Request.Context(), tenantID)
		if err != nil {
			logger.L(c.Request.Context()).Error("Subscription check failed", zap.Error(err))
			abortWithError(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable,
				"Subscription status is temporarily unavailable", nil)
			return
		}

		if derr := decision.Err(); derr != nil {
			var domainErr *shared.DomainError
			details := map[string]any{"show_modal": true}
			if errors.As(derr, &domainErr) {
				details = domainErr.Details
			}
			abortWithError(c, http.StatusPaymentRequired, dto.ErrCodeSubscriptionExpired,
				shared.ErrSubscriptionExpired.Message, details)
			return
		}

		c.Next()
	}
}
