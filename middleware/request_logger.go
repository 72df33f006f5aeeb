package middleware

import (
	"time"

	"projectledger/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceHeader 请求追踪 ID 头
const TraceHeader = "X-Trace-ID"

// RequestLogger 为每个请求分配追踪 ID，并把带 trace_id 的子日志挂到请求上下文
// 请求结束后记录方法、路径、状态码和耗时
func RequestLogger(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(TraceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.NewString()
		}
		reqLog := base.With().Str("trace_id", traceID).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))
		c.Header(TraceHeader, traceID)

		c.Next()

		status := c.Writer.Status()
		event := reqLog.Info()
		switch {
		case status >= 500:
			event = reqLog.Error()
		case status >= 400:
			event = reqLog.Warn()
		}
		if s, ok := CurrentSession(c); ok {
			event = event.Uint("user_id", s.UserID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
