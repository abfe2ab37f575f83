package middleware

import (
	"time"

	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-Id"

// RequestLogger tags every request with an id, stores the request fields in the context and logs
// completion with status and latency.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		ctx := logger.WithRequest(c.Request.Context(), logger.RequestFields{
			ID:     reqID,
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(ctx)
		log := logger.FromContext(ctx, base)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}
		evt.Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("request.complete")
	}
}
