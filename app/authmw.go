package app

import (
	"Gin_postgres_redis_book_rental/token"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthRequired 校验 Authorization: Bearer <jwt>，通过后把 userID 放进 Context
func AuthRequired(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid token"})
			return
		}
		claims, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid token"})
			return
		}
		// 后续 handler 可用
		c.Set("userID", claims.UserID)
		c.Next()
	}
}
