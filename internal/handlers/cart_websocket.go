package handlers

import (
	"log"
	"net/http"
	"time"

	"savora_storefront/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse un instantané du panier à chaque mutation,
// via l'abonnement au store plutôt que du polling.
func CartWebSocket(carts *store.CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("❌ Erreur upgrade WebSocket: %v", err)
			return
		}
		defer conn.Close()

		cart := carts.Get(c.GetString("sid"))
		updates, unsubscribe := cart.Subscribe()
		defer unsubscribe()

		conn.WriteJSON(gin.H{
			"type":    "connected",
			"message": "Synchronisation panier activée",
		})

		for {
			select {
			case update := <-updates:
				err := conn.WriteJSON(gin.H{
					"type":  "cart_updated",
					"items": update.Items,
					"total": update.Total,
					"count": update.Count,
				})
				if err != nil {
					log.Printf("❌ Erreur envoi WebSocket: %v", err)
					return
				}
			case <-time.After(30 * time.Second):
				// Ping pour garder la connexion active
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
