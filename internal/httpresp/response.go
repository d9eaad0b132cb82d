package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the shape of every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

func OK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
	})
}

// WithMeta is OK plus a meta object, used for pagination.
func WithMeta(c *gin.Context, data any, meta any) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}
