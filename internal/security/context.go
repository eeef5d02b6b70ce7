package security

import (
	"github.com/gin-gonic/gin"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// ContextKeyUser is the gin context key the auth middleware stores the
// authenticated user under.
const ContextKeyUser = "auth.user"

// CurrentUser returns the authenticated user from the gin context.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*entity.User)
	return user, ok
}

// MustCurrentUser returns the authenticated user or nil. Handlers behind
// the auth middleware may assume the user is present.
func MustCurrentUser(c *gin.Context) *entity.User {
	user, _ := CurrentUser(c)
	return user
}
