package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "procurement/internal/core/context"
	"procurement/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Gin context keys.
const (
	KeyRequestID = "request_id"
	KeyTraceID   = "trace_id"
	KeyUserID    = "user_id"
)

// Trace middleware extracts or generates request and trace ids and puts a
// request-scoped logger into the context.
func Trace(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := appctx.NewTraceContext(c.GetHeader(HeaderTraceID), c.GetHeader(HeaderRequestID))

		ctx := appctx.WithTrace(c.Request.Context(), trace)
		ctx = logger.WithLogger(ctx, log)
		c.Request = c.Request.WithContext(ctx)

		c.Set(KeyTraceID, trace.TraceID)
		c.Set(KeyRequestID, trace.RequestID)

		c.Header(HeaderRequestID, trace.RequestID)
		c.Header(HeaderTraceID, trace.TraceID)

		c.Next()
	}
}
