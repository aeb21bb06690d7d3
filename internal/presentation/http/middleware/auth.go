package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/receiptbook-api/pkg/utils"
)

// AuthMiddleware validates the bearer token and resolves the caller's role.
// Handlers read the result with handler.GetCaller.
func AuthMiddleware(jwtManager *utils.JWTManager, roleService *service.RoleService) gin.HandlerFunc {
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

		caller, err := roleService.Resolve(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Printf("Failed to resolve role for %s: %v", claims.UserID, err)
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("caller", caller)

		c.Next()
	}
}
