package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/salesdata/internal/logger"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID is a Gin middleware that injects a unique identifier
// for each incoming HTTP request.
//
// Behavior:
//   - Reuses a well formed UUID sent by the client in X-Request-ID, otherwise generates a v4.
//   - Stores it in the Gin context under the key "request_id".
//   - Adds it to the response headers as "X-Request-ID".
//   - Attaches a logger carrying the id to the request context, so code
//     below the HTTP layer can use logger.FromContext(ctx).
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		scoped := logger.L().With().Str(RequestIDKey, id).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), scoped))

		c.Next()
	}
}
