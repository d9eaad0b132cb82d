package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
)

// ErrorHandler serializes the last error a handler pushed with c.Error.
func ErrorHandler(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		he := httperr.From(err)
		if he.Status() >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.String("kind", string(he.Kind)),
				zap.Error(err),
			)
		}

		httperr.Write(c, he, production)
	}
}

// Recovery turns a panic into an internal error response.
func Recovery(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				httperr.Write(c, httperr.Internal(fmt.Errorf("panic: %v", rec)), production)
			}
		}()
		c.Next()
	}
}
