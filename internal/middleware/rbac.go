package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/response"
)

// RequireRoles lets through sessions holding one of roles. ADMIN is always allowed.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles)+1)
	allowed[models.RoleAdmin] = struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		session := SessionFrom(c)
		if session == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[session.Role]; ok {
			c.Next()
			return
		}
		if !session.Authenticated() {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
