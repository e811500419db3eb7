package handlers

import (
	"errors"
	"log"
	"net/http"

	"savora_storefront/internal/checkout"
	"savora_storefront/internal/models"
	"savora_storefront/internal/session"
	"savora_storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// Checkout déroule la séquence de commande pour la session courante.
// Toute la validation (session active, champs requis, panier non vide)
// appartient au séquenceur, le handler ne fait que transporter.
func Checkout(seq *checkout.Sequencer, carts *store.CartRegistry, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			models.CheckoutForm
			PaymentMethod   models.PaymentMethod `json:"paymentMethod"`
			PaymentMethodID string               `json:"paymentMethodId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
			return
		}

		ctx := c.Request.Context()
		sid := c.GetString("sid")

		token, err := sessions.Token(ctx, sid)
		if err != nil {
			log.Printf("❌ Erreur lecture session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de session"})
			return
		}

		order, err := seq.Run(ctx, checkout.Input{
			Form:            req.CheckoutForm,
			Method:          req.PaymentMethod,
			PaymentMethodID: req.PaymentMethodID,
			Token:           token,
			Cart:            carts.Get(sid),
		})
		if err != nil {
			if errors.Is(err, checkout.ErrInFlight) {
				c.JSON(http.StatusConflict, gin.H{"error": userMessage(err)})
				return
			}
			c.JSON(httpStatus(err), gin.H{"error": userMessage(err)})
			return
		}

		// La liste en cache ne contient pas la nouvelle commande
		if err := sessions.InvalidateOrders(ctx, sid); err != nil {
			log.Printf("⚠️ Cache commandes non invalidé: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Commande enregistrée",
			"order":   order,
		})
	}
}
