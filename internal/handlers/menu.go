package handlers

import (
	"log"
	"net/http"

	"savora_storefront/internal/api"
	"savora_storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// GetMenu rafraîchit le catalogue depuis l'amont puis le sert groupé par
// catégorie. Si l'amont est injoignable, le dernier catalogue connu est servi.
func GetMenu(client *api.Client, catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := client.FetchMenu(c.Request.Context())
		if err != nil {
			if cached := catalog.Items(); len(cached) > 0 {
				log.Printf("⚠️ Menu amont indisponible, catalogue en mémoire servi: %v", err)
				c.JSON(http.StatusOK, gin.H{
					"items":      cached,
					"categories": catalog.Grouped(),
					"stale":      true,
				})
				return
			}
			c.JSON(httpStatus(err), gin.H{"error": userMessage(err)})
			return
		}

		catalog.ReplaceAll(items)
		c.JSON(http.StatusOK, gin.H{
			"items":      items,
			"categories": catalog.Grouped(),
		})
	}
}
