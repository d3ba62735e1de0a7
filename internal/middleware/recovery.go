package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salesdata/internal/logger"
)

// RecoveryMiddleware returns a Gin middleware that recovers from panics,
// logs the stack trace with the request id, and answers with a
// dto.ErrorResponse (500). The stack never reaches the client.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(c.Request.Context()).Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				AbortWithError(c, http.StatusInternalServerError, "Internal server error", fmt.Errorf("%v", r))
			}
		}()

		c.Next()
	}
}
