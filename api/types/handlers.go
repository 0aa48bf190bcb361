package types

import (
	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/killallgit/rewise-api/internal/apperr"
)

// Handler utility functions to reduce duplication across handlers

// SendError aborts the request with a standardized error body
func SendError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// SendBadRequest sends a standardized validation error response
func SendBadRequest(c *gin.Context, message string) {
	err := apperr.NewValidationError("", message)
	SendError(c, apperr.HTTPStatus(err), apperr.Code(err), message)
}

// RespondError maps err onto the error taxonomy and writes the response.
// Causes are logged, never returned to the client.
func RespondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	_ = c.Error(err)
	SendError(c, status, apperr.Code(err), apperr.Message(err))
}
