package middleware

import (
	"errors"
	"net/http"

	"vibe-todo/vibetodo/services"
	"vibe-todo/vibetodo/utils/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token when auth is enabled. The
// token may also come from the token query parameter, which browsers need
// for websocket upgrades.
func AuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			msg := token.ErrInvalidToken.Error()
			if !errors.Is(err, token.ErrInvalidToken) {
				msg = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}
