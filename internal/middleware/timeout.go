package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salesdata/internal/domain/dto"
)

// Timeout bounds the request context by d. When the deadline passes before
// the handler wrote anything, a 504 dto.ErrorResponse is attached for
// ErrorHandler to render, so Timeout must run inside ErrorHandler.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.Status(http.StatusGatewayTimeout)
			_ = c.Error(dto.NewErrorResponse("Request timed out", ctx.Err()))
		}
	}
}
