package middleware

import (
	"github.com/ceidev/taskboard/internal/constants"
	apierrors "github.com/ceidev/taskboard/internal/errors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests that carry no authenticated session. The
// login handlers store the user id as a uint64; any other session value
// is treated as unauthenticated.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, ok := session.Get(constants.ContextKeyUserID).(uint64)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the user id placed in the request context by RequireAuth.
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint64)
	return userID, ok
}
