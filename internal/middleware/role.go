package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
)

// RequireRoles must run after AuthMiddleware.
func RequireRoles(production bool, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			httperr.Write(c, httperr.Authentication("Authentication required"), production)
			return
		}

		role := UserRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		httperr.Write(c, httperr.Authorization("Insufficient permissions"), production)
	}
}

// AccountFinder loads the current state of an account.
type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// RequireActiveRoles re-reads the caller's account so a demoted or deactivated
// user loses access before their token expires. Must run after AuthMiddleware.
func RequireActiveRoles(accounts AccountFinder, production bool, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			httperr.Write(c, httperr.Authentication("Authentication required"), production)
			return
		}

		user, err := accounts.FindByID(c.Request.Context(), id)
		switch {
		case errors.Is(err, account.ErrNotFound):
			httperr.Write(c, httperr.Authentication("User not found or inactive"), production)
			return
		case err != nil:
			httperr.Write(c, httperr.Database(err), production)
			return
		case !user.IsActive:
			httperr.Write(c, httperr.Authentication("User not found or inactive"), production)
			return
		}

		for _, r := range roles {
			if r == user.Role {
				c.Set(ContextUserRole, user.Role)
				c.Next()
				return
			}
		}

		httperr.Write(c, httperr.Authorization("Insufficient permissions"), production)
	}
}
