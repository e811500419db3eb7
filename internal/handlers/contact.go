package handlers

import (
	"net/http"

	"savora_storefront/internal/api"
	"savora_storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// SendContactMessage transmet le formulaire de contact à l'amont.
func SendContactMessage(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var msg models.ContactMessage
		if err := c.ShouldBindJSON(&msg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
			return
		}

		if err := client.SendContact(c.Request.Context(), msg); err != nil {
			c.JSON(httpStatus(err), gin.H{"error": userMessage(err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Message envoyé, nous revenons vers vous rapidement"})
	}
}
