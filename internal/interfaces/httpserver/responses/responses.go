package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namestorm/server/internal/domain/chat"
	"github.com/namestorm/server/internal/domain/conversation"
)

// ErrorResponse is the structured error envelope returned to clients.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleError maps domain errors to HTTP statuses and aborts the request.
func HandleError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, chat.ErrGatewayNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, conversation.ErrEmptyHistory),
		errors.Is(err, conversation.ErrBadTrailingTurn):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   err.Error(),
		Message: message,
	})
}

// HandleBadRequest reports a malformed request body.
func HandleBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   err.Error(),
		Message: "invalid request",
	})
}
