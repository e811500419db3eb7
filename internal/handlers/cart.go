package handlers

import (
	"net/http"

	"savora_storefront/internal/store"

	"github.com/gin-gonic/gin"
)

func cartJSON(cart *store.Cart) gin.H {
	snap := cart.Snapshot()
	return gin.H{"items": snap.Items, "total": snap.Total, "count": snap.Count}
}

func GetCart(carts *store.CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := carts.Get(c.GetString("sid"))
		c.JSON(http.StatusOK, cartJSON(cart))
	}
}

// AddToCart ajoute un plat du catalogue au panier de la session.
// Un plat déjà présent voit sa quantité incrémentée, jamais de ligne dupliquée.
func AddToCart(catalog *store.Catalog, carts *store.CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
			return
		}
		if input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		item, ok := catalog.Get(input.ProductID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plat introuvable"})
			return
		}

		cart := carts.Get(c.GetString("sid"))
		cart.Add(item, input.Quantity)

		resp := cartJSON(cart)
		resp["message"] = "Plat ajouté au panier"
		c.JSON(http.StatusOK, resp)
	}
}

// DecrementCartItem baisse la quantité de 1 ; la ligne disparaît à zéro.
func DecrementCartItem(carts *store.CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProductID string `json:"productId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
			return
		}

		cart := carts.Get(c.GetString("sid"))
		cart.Decrement(input.ProductID)
		c.JSON(http.StatusOK, cartJSON(cart))
	}
}

func RemoveFromCart(carts *store.CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := carts.Get(c.GetString("sid"))
		cart.Remove(c.Param("productId"))

		resp := cartJSON(cart)
		resp["message"] = "Plat supprimé du panier"
		c.JSON(http.StatusOK, resp)
	}
}

func ClearCart(carts *store.CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := carts.Get(c.GetString("sid"))
		cart.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
	}
}
