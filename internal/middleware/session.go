package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/logger"
	"github.com/noah-isme/sees-portal/pkg/response"
)

// ContextSessionKey is the gin context key storing the caller's *models.Session.
const ContextSessionKey = "session"

type sessionResolver interface {
	Guest() *models.Session
	Resolve(token string) (*models.Session, error)
}

// Session attaches the caller's session. Requests without an Authorization
// header continue as guests; malformed or rejected tokens are refused.
func Session(resolver sessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			setSession(c, resolver.Guest())
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		session, err := resolver.Resolve(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		setSession(c, session)
		c.Next()
	}
}

// SessionFrom returns the session attached by Session, or nil.
func SessionFrom(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}

func setSession(c *gin.Context, session *models.Session) {
	c.Set(ContextSessionKey, session)
	c.Set(logger.RoleContextKey, string(session.Role))
}
