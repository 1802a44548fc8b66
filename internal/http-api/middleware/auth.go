package middleware

import (
	"net/http"
	"strings"

	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization
// header, including the logout blacklist.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set("claims", claims)
		c.Set("username", claims.Username)
		c.Set("admin", claims.Admin)
		c.Set("userType", claims.UserType)
		c.Set("token", tokenString)

		c.Next()
	}
}

// RequireAdmin rejects requests whose token lacks the admin flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, exists := c.Get("admin")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin flag not found in token"})
			c.Abort()
			return
		}

		isAdmin, ok := admin.(bool)
		if !ok || !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAuthor allows author accounts through; admins pass as well.
func RequireAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if admin, ok := c.Get("admin"); ok {
			if isAdmin, ok := admin.(bool); ok && isAdmin {
				c.Next()
				return
			}
		}

		userType, exists := c.Get("userType")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "user type not found in token"})
			c.Abort()
			return
		}

		if t, ok := userType.(string); !ok || t != "author" {
			c.JSON(http.StatusForbidden, gin.H{"error": "author access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
