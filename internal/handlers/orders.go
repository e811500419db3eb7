package handlers

import (
	"log"
	"net/http"

	"savora_storefront/internal/api"
	"savora_storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// GetMyOrders sert la liste en cache si elle existe, sinon interroge l'amont
// et met le résultat en cache de session.
func GetMyOrders(client *api.Client, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sid := c.GetString("sid")
		token := c.GetString("token")

		if cached, ok, _ := sessions.CachedOrders(ctx, sid); ok {
			c.JSON(http.StatusOK, gin.H{"orders": cached, "cached": true})
			return
		}

		orders, err := client.MyOrders(ctx, token)
		if err != nil {
			c.JSON(httpStatus(err), gin.H{"error": userMessage(err)})
			return
		}

		if err := sessions.CacheOrders(ctx, sid, orders); err != nil {
			log.Printf("⚠️ Cache commandes non écrit: %v", err)
		}

		log.Printf("✅ %d commandes trouvées pour la session %s", len(orders), sid)
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
