package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spaceexplorer/internal/service"
)

// UserKey — ключ в контексте gin с аутентифицированным пользователем.
const UserKey = "currentUser"

// AuthRequired проверяет Bearer-токен сессии и кладет пользователя
// в контекст запроса.
func AuthRequired(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Без схемы Bearer принимается и голый токен
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

		user, err := auth.UserFromToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "authentication required",
			})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}
