package middleware

import (
	"net/http"

	"savora_storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// RequireAuth bloque les routes réservées aux utilisateurs connectés.
// Le token amont est mis dans le contexte Gin sous "token".
func RequireAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("sid")

		token, err := sessions.Token(c.Request.Context(), sid)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
			c.Abort()
			return
		}

		c.Set("token", token)
		c.Next()
	}
}
