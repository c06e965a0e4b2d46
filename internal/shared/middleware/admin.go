package middleware

import (
	"github.com/gin-gonic/gin"

	"readgrid-backend/internal/shared/response"
)

// AdminMiddleware checks if the authenticated user has the admin role.
// Must be registered after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok || !claims.IsAdmin() {
			response.Forbidden(c, "Access denied. Admin only.")
			c.Abort()
			return
		}

		c.Next()
	}
}
