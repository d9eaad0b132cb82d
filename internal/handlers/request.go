package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	ucAuth "github.com/BruksfildServices01/bookmylook-auth/internal/usecase/auth"
)

// bind decodes the JSON body into dst. An absent or malformed body is pushed
// as a validation error and bind reports false.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(httperr.Validation("Invalid request body", nil).Wrap(err))
		return false
	}
	return true
}

func client(c *gin.Context) ucAuth.Client {
	return ucAuth.Client{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
