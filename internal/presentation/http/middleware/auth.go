package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/dto/response"
	"github.com/sellista/pos-checkout-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_login", claims.Login)
		c.Set("user_admin", claims.Admin)

		c.Next()
	}
}

// RequireAdmin creates a middleware that restricts a route to admin users
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, exists := c.Get("user_admin")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		isAdmin, ok := admin.(bool)
		if !ok || !isAdmin {
			response.Forbidden(c, "This action requires an administrator")
			c.Abort()
			return
		}
		c.Next()
	}
}
