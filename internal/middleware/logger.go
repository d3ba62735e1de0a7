package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salesdata/internal/logger"
	"github.com/guttosm/salesdata/internal/metrics"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available), and feeds the HTTP
// Prometheus collectors.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"level":"info","request_id":"123e4567-…","method":"GET","path":"/api/v1/sales","status":200,"latency_ms":15,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		metrics.ObserveHTTP(c.FullPath(), method, status, latency)

		event := logger.L().Info()
		if status >= 500 {
			event = logger.L().Error()
		}
		event.
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
