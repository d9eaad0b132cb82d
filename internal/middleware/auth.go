package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
	"github.com/BruksfildServices01/bookmylook-auth/internal/security"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// AuthMiddleware accepts only access tokens and stores their claims on the context.
func AuthMiddleware(tokens *security.TokenIssuer, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Write(c, httperr.Authentication("Access token is required"), production)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Write(c, httperr.Authentication("Invalid authorization header"), production)
			return
		}

		claims, err := tokens.VerifyAccess(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Write(c, httperr.Authentication("Invalid or expired token").Wrap(err), production)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, models.Role(claims.Role))

		c.Next()
	}
}

// UserID returns the authenticated caller, if any.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

func UserRole(c *gin.Context) models.Role {
	v, _ := c.Get(ContextUserRole)
	role, _ := v.(models.Role)
	return role
}
