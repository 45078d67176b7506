package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3rank/internal/domain/dto"
	"github.com/guttosm/b3rank/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON error body.
//
// Handlers that already wrote a response are left alone. A dto.ErrorResponse
// is sent as is; any other error is wrapped as an internal error.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().Str("request_id", toString(rid)).Err(err).Msg("request failed")

	var resp dto.ErrorResponse
	if !errors.As(err, &resp) {
		resp = dto.NewErrorResponse("Internal server error", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}

// AbortWithError stops the chain and writes a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
