package handlers

import (
	"log"
	"net/http"

	"savora_storefront/internal/api"
	"savora_storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// Login délègue l'authentification à l'API amont puis range le token et le
// profil dans l'état de session.
func Login(client *api.Client, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
			return
		}

		ctx := c.Request.Context()
		token, profile, err := client.Login(ctx, input.Email, input.Password)
		if err != nil {
			// Un refus amont (401) est rendu tel quel ; un amont injoignable
			// ou incohérent devient un 502, pas un faux "mot de passe invalide"
			c.JSON(httpStatus(err), gin.H{"error": userMessage(err)})
			return
		}

		sid := c.GetString("sid")
		if err := sessions.Login(ctx, sid, token, profile); err != nil {
			log.Printf("❌ Erreur écriture session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur d'enregistrement de la session"})
			return
		}

		log.Printf("✅ Connexion réussie pour %s", profile.Email)
		c.JSON(http.StatusOK, gin.H{
			"message": "Connexion réussie",
			"user":    profile,
		})
	}
}

// Logout supprime token, profil et cache de commandes d'un seul coup.
func Logout(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("sid")
		if err := sessions.Logout(c.Request.Context(), sid); err != nil {
			log.Printf("❌ Erreur logout: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la déconnexion"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
	}
}

func Me(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("sid")
		profile, ok, err := sessions.Profile(c.Request.Context(), sid)
		if err != nil || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": profile})
	}
}
