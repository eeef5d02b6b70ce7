package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
	"github.com/jrjohn/academy-cloud-go/internal/security"
)

// AccessTokenCookie is the cookie carrying the access token.
const AccessTokenCookie = "access_token"

// RefreshTokenCookie is the cookie carrying the refresh token.
const RefreshTokenCookie = "refresh_token"

// AuthMiddleware authenticates requests. A valid token alone is not enough:
// the user must also have a live session cache entry, so logout takes effect
// before the token expires.
type AuthMiddleware struct {
	jwtProvider *security.JWTProvider
	sessions    *cache.SessionCache
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(jwtProvider *security.JWTProvider, sessions *cache.SessionCache) *AuthMiddleware {
	return &AuthMiddleware{
		jwtProvider: jwtProvider,
		sessions:    sessions,
	}
}

// extractToken takes the access token from the cookie or, failing that,
// from a bearer Authorization header.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Authenticate validates the access token, requires a live session and sets
// the user in context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, response.NewError[any]("authentication required"))
			c.Abort()
			return
		}

		claims, err := m.jwtProvider.ParseAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.NewError[any]("invalid or expired token"))
			c.Abort()
			return
		}

		user, err := m.sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.NewError[any]("internal server error"))
			c.Abort()
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, response.NewError[any]("session expired, please log in again"))
			c.Abort()
			return
		}

		c.Set(security.ContextKeyUser, user)
		c.Next()
	}
}

// RequireRole checks if the authenticated user has one of the given roles.
func (m *AuthMiddleware) RequireRole(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := security.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, response.NewError[any]("authentication required"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, response.NewError[any]("insufficient permissions"))
		c.Abort()
	}
}

// RequireAdmin checks if the authenticated user is an admin.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)
}
