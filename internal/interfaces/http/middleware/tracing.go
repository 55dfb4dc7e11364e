package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts the server span for every request; the rest of the chain
// runs inside it
func Tracing(serviceName string, opts ...otelgin.Option) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, opts...)
}

// TraceAttributes tags the server span with request, tenant and user ids
// once the handler chain has run and marks 5xx responses as errors.
func TraceAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		attrs := make([]attribute.KeyValue, 0, 3)
		if id := c.GetString(RequestIDKey); id != "" {
			attrs = append(attrs, attribute.String("request_id", id))
		}
		if id := GetTenantID(c); id != uuid.Nil {
			attrs = append(attrs, attribute.String("tenant_id", id.String()))
		}
		if id := GetUserID(c); id != uuid.Nil {
			attrs = append(attrs, attribute.String("user_id", id.String()))
		}
		span.SetAttributes(attrs...)

		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.String("gin.errors", c.Errors.String()))
		}
	}
}
