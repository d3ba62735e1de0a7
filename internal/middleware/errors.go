package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salesdata/internal/domain/dto"
	"github.com/guttosm/salesdata/internal/logger"
)

// ErrorHandler renders errors attached with c.Error() once the handler
// chain returns, unless a response was already written.
//
// A dto.ErrorResponse is written as is; anything else becomes a generic
// 500 "Internal server error".
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	last := c.Errors.Last().Err
	logger.FromContext(c.Request.Context()).Error().Err(last).Msg("request failed")

	if c.Writer.Written() {
		return
	}

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	var resp dto.ErrorResponse
	if !errors.As(last, &resp) {
		resp = dto.NewErrorResponse("Internal server error", last)
	}
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
