package middleware

import (
	"auto-market/helper"
	"auto-market/models"
	"auto-market/services"

	"github.com/gin-gonic/gin"
)

var HTTPHelper = &helper.HTTPHelper{}

// AuthRequired resolves the session cookie to a user and aborts with 401
// when there is none. Expired and malformed tokens look identical to a
// missing one.
func AuthRequired(authService services.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		user, err := authService.Authenticate(token)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "authentication required")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

// AuthOptional attaches the user when a valid session exists and continues
// anonymously otherwise. Used by the public search surface.
func AuthOptional(authService services.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		if token != "" {
			if user, err := authService.Authenticate(token); err == nil {
				c.Set("user", user)
				c.Set("user_id", user.ID)
				c.Set("role", string(user.Role))
			}
		}
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			HTTPHelper.SendUnauthorizedError(c, "authentication required")
			c.Abort()
			return
		}

		roleStr := value.(string)
		for _, role := range roles {
			if roleStr == string(role) {
				c.Next()
				return
			}
		}

		c.JSON(403, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}

// CurrentUser pulls the authenticated user out of the request context.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
